// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import (
	"fmt"
	"sync/atomic"
	"time"
)

// ModelSnapshot is the complete trained state of the collaborative model.
// A snapshot is immutable once published; retraining produces a new
// snapshot rather than mutating the current one, so concurrent scoring
// always observes a consistent matrix and similarity index.
type ModelSnapshot struct {
	Version    string
	TrainedAt  time.Time
	UserIDs    []string
	ItemIDs    []string
	Matrix     [][]float64
	Similarity [][]float64

	userIdx map[string]int
	itemIdx map[string]int
}

// NewModelSnapshot assembles a snapshot from a built matrix and its
// similarity index. The id lookup maps are derived once here so scoring
// never pays for them.
func NewModelSnapshot(version string, trainedAt time.Time, m *InteractionMatrix, sim [][]float64) *ModelSnapshot {
	return &ModelSnapshot{
		Version:    version,
		TrainedAt:  trainedAt,
		UserIDs:    m.UserIDs,
		ItemIDs:    m.ItemIDs,
		Matrix:     m.Weights,
		Similarity: sim,
		userIdx:    indexOf(m.UserIDs),
		itemIdx:    indexOf(m.ItemIDs),
	}
}

// restoreIndices rebuilds the derived lookup maps after deserialization.
func (s *ModelSnapshot) restoreIndices() {
	s.userIdx = indexOf(s.UserIDs)
	s.itemIdx = indexOf(s.ItemIDs)
}

// UserIndex returns the matrix row for a user id.
func (s *ModelSnapshot) UserIndex(id string) (int, bool) {
	i, ok := s.userIdx[id]
	return i, ok
}

// ItemIndex returns the matrix column for a project id.
func (s *ModelSnapshot) ItemIndex(id string) (int, bool) {
	i, ok := s.itemIdx[id]
	return i, ok
}

// Sparsity returns the fraction of zero cells in the interaction matrix.
func (s *ModelSnapshot) Sparsity() float64 {
	total := len(s.UserIDs) * len(s.ItemIDs)
	if total == 0 {
		return 1
	}
	nonzero := 0
	for _, row := range s.Matrix {
		for _, w := range row {
			if w != 0 {
				nonzero++
			}
		}
	}
	return 1 - float64(nonzero)/float64(total)
}

// snapshotVersion formats a trained-at timestamp as a model version.
// Seconds resolution keeps versions distinct across same-day retrains.
func snapshotVersion(trainedAt time.Time) string {
	return fmt.Sprintf("v1.0_%s", trainedAt.UTC().Format("20060102T150405"))
}

// Registry holds the currently published snapshot. Publication is a
// single atomic pointer swap, so readers either see the old snapshot or
// the new one, never a mix.
type Registry struct {
	current atomic.Pointer[ModelSnapshot]
}

// Current returns the published snapshot, or false when the model has
// never been trained or loaded.
func (r *Registry) Current() (*ModelSnapshot, bool) {
	s := r.current.Load()
	return s, s != nil
}

// Publish atomically replaces the current snapshot.
func (r *Registry) Publish(s *ModelSnapshot) {
	r.current.Store(s)
}
