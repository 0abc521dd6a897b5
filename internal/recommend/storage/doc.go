// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

// Package storage persists model snapshots to disk.
//
// Snapshots are gob-encoded, gzip-compressed, and wrapped with metadata
// that includes a SHA-256 checksum of the raw payload. The checksum is
// verified on load so a truncated or corrupted file fails loudly instead
// of publishing a broken model.
//
// Files are named {name}_{version}.gob.gz. Version strings embed a UTC
// timestamp, so lexicographic order is chronological order and the latest
// version can be picked without reading file contents.
package storage
