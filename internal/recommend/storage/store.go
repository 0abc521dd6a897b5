// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package storage

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when no snapshot exists for the requested name
// or version.
var ErrNotFound = errors.New("storage: snapshot not found")

// SnapshotMetadata describes a persisted snapshot.
type SnapshotMetadata struct {
	// Name is the snapshot family name, shared across versions.
	Name string `json:"name"`

	// Version is the model version string, e.g. "v1.0_20260115T093000".
	Version string `json:"version"`

	// TrainedAt is when the model was trained.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the snapshot was written.
	SavedAt time.Time `json:"saved_at"`

	// UserCount and ItemCount are the matrix dimensions.
	UserCount int `json:"user_count"`
	ItemCount int `json:"item_count"`

	// Sparsity is the fraction of zero cells in the interaction matrix.
	Sparsity float64 `json:"sparsity"`

	// InteractionCount is the number of events the model was trained on.
	InteractionCount int `json:"interaction_count"`

	// Checksum is the SHA-256 of the uncompressed payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size.
	SizeBytes int64 `json:"size_bytes"`
}

// storedFile is the on-disk format.
type storedFile struct {
	Metadata       SnapshotMetadata
	CompressedData []byte
}

// SnapshotState is the serializable form of a trained model snapshot.
// The derived id-to-index maps are intentionally absent; they are rebuilt
// after load.
type SnapshotState struct {
	Version    string
	TrainedAt  time.Time
	UserIDs    []string
	ItemIDs    []string
	Matrix     [][]float64
	Similarity [][]float64
}

func init() {
	gob.Register(storedFile{})
	gob.Register(SnapshotState{})
}

// Store manages snapshot files under a single directory. All operations
// are safe for concurrent use.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// latest version string per snapshot name
	versions map[string]string
}

// NewStore opens (creating if needed) a snapshot store at baseDir and
// scans it for existing versions.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	s := &Store{
		baseDir:  baseDir,
		versions: make(map[string]string),
	}
	if err := s.scan(); err != nil {
		return nil, fmt.Errorf("scan snapshot directory: %w", err)
	}
	return s, nil
}

func (s *Store) scan() error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, version, ok := parseSnapshotFilename(entry.Name())
		if !ok {
			continue
		}
		if current, exists := s.versions[name]; !exists || version > current {
			s.versions[name] = version
		}
	}
	return nil
}

// parseSnapshotFilename splits "{name}_{version}.gob.gz" into its parts.
// The version is everything from the last "_v" onward.
func parseSnapshotFilename(filename string) (name, version string, ok bool) {
	base, found := strings.CutSuffix(filename, ".gob.gz")
	if !found {
		return "", "", false
	}
	idx := strings.LastIndex(base, "_v")
	if idx < 1 || idx+1 >= len(base) {
		return "", "", false
	}
	return base[:idx], base[idx+1:], true
}

// Save writes a snapshot version to disk. The write goes to a temporary
// file first and is renamed into place, so a crash mid-write never leaves
// a half-written current version.
func (s *Store) Save(name string, state SnapshotState, meta SnapshotMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(state); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	raw := payload.Bytes()

	hash := sha256.Sum256(raw)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.Name = name
	meta.Version = state.Version
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()

	final := s.snapshotPath(name, state.Version)
	tmp := final + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	sf := storedFile{Metadata: meta, CompressedData: compressed.Bytes()}
	if err := gob.NewEncoder(f).Encode(sf); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write snapshot file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close snapshot file: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("publish snapshot file: %w", err)
	}

	if current, ok := s.versions[name]; !ok || state.Version > current {
		s.versions[name] = state.Version
	}
	return nil
}

// Load reads a snapshot version, verifying its checksum. An empty version
// loads the latest. Returns ErrNotFound when nothing matches.
func (s *Store) Load(name, version string) (*SnapshotState, *SnapshotMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == "" {
		latest, ok := s.versions[name]
		if !ok {
			return nil, nil, ErrNotFound
		}
		version = latest
	}

	f, err := os.Open(s.snapshotPath(name, version))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, nil, fmt.Errorf("read snapshot file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	defer func() { _ = gzr.Close() }()

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed snapshot: %w", err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, nil, fmt.Errorf("snapshot checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}

	var state SnapshotState
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&state); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &state, &sf.Metadata, nil
}

// LatestVersion returns the newest stored version for a snapshot name.
func (s *Store) LatestVersion(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.versions[name]
	return v, ok
}

// List returns metadata for every stored snapshot version of a name,
// newest first.
func (s *Store) List(name string) ([]SnapshotMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions, err := s.versionsOf(name)
	if err != nil {
		return nil, err
	}

	var metas []SnapshotMetadata
	for _, version := range versions {
		f, err := os.Open(s.snapshotPath(name, version))
		if err != nil {
			continue
		}
		var sf storedFile
		if err := gob.NewDecoder(f).Decode(&sf); err == nil {
			metas = append(metas, sf.Metadata)
		}
		_ = f.Close()
	}
	return metas, nil
}

// Delete removes one snapshot version and refreshes the latest-version
// tracking for its name.
func (s *Store) Delete(name, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.snapshotPath(name, version)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete snapshot: %w", err)
	}

	if s.versions[name] == version {
		delete(s.versions, name)
		remaining, err := s.versionsOf(name)
		if err != nil {
			return fmt.Errorf("rescan snapshots: %w", err)
		}
		if len(remaining) > 0 {
			s.versions[name] = remaining[0]
		}
	}
	return nil
}

// Prune removes old versions of a snapshot, keeping the newest keep
// versions. keep values below 1 keep one.
func (s *Store) Prune(name string, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 1 {
		keep = 1
	}
	versions, err := s.versionsOf(name)
	if err != nil {
		return fmt.Errorf("list snapshot versions: %w", err)
	}
	for i := keep; i < len(versions); i++ {
		_ = os.Remove(s.snapshotPath(name, versions[i]))
	}
	return nil
}

// versionsOf lists all stored versions for a name, newest first.
// Timestamp-embedded versions sort chronologically as strings.
func (s *Store) versionsOf(name string) ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}
	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		n, v, ok := parseSnapshotFilename(entry.Name())
		if !ok || n != name {
			continue
		}
		versions = append(versions, v)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(versions)))
	return versions, nil
}

func (s *Store) snapshotPath(name, version string) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_%s.gob.gz", name, version))
}
