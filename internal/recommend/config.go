// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import "fmt"

// Config controls the matching engine.
type Config struct {
	// NeighborhoodSize is the number of similar users consulted per
	// collaborative prediction.
	NeighborhoodSize int `json:"neighborhood_size" koanf:"neighborhood_size"`

	// Weights is the default collaborative/content blend for project
	// search. Requests may override it.
	Weights HybridWeights `json:"hybrid_weights" koanf:"hybrid_weights"`

	// MinInteractions is the smallest event set training will accept.
	MinInteractions int `json:"min_interactions" koanf:"min_interactions"`

	// ModelDir is where snapshots are persisted. Empty disables
	// persistence; train and reload then operate in memory only.
	ModelDir string `json:"model_dir" koanf:"model_dir"`

	// SnapshotName is the base name for persisted snapshot files.
	SnapshotName string `json:"snapshot_name" koanf:"snapshot_name"`

	// KeepSnapshots is how many persisted snapshot versions to retain.
	// Older versions are pruned after a successful save. Zero keeps all.
	KeepSnapshots int `json:"keep_snapshots" koanf:"keep_snapshots"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		NeighborhoodSize: 50,
		Weights:          DefaultHybridWeights(),
		MinInteractions:  1,
		ModelDir:         "models",
		SnapshotName:     "recommendation_model",
		KeepSnapshots:    3,
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.NeighborhoodSize <= 0 {
		return fmt.Errorf("neighborhood_size must be positive, got %d", c.NeighborhoodSize)
	}
	if c.Weights.Collaborative < 0 || c.Weights.Content < 0 {
		return fmt.Errorf("hybrid weights must be non-negative, got %+v", c.Weights)
	}
	if c.MinInteractions < 1 {
		return fmt.Errorf("min_interactions must be at least 1, got %d", c.MinInteractions)
	}
	if c.ModelDir != "" && c.SnapshotName == "" {
		return fmt.Errorf("snapshot_name required when model_dir is set")
	}
	if c.KeepSnapshots < 0 {
		return fmt.Errorf("keep_snapshots must be non-negative, got %d", c.KeepSnapshots)
	}
	return nil
}

// Clone returns a deep copy so callers can tweak a config without
// affecting the engine's copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
