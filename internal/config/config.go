// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package config

import (
	"fmt"
	"time"

	"github.com/workdev/talentmatch/internal/recommend"
)

// Config holds all service configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting (TALENTMATCH_ prefix)
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - TALENTMATCH_SERVER_HOST: Bind address (default: 0.0.0.0)
//   - TALENTMATCH_SERVER_PORT: Listen port (default: 8080)
//   - TALENTMATCH_SERVER_CORS_ORIGINS: Comma-separated allowed origins
type ServerConfig struct {
	Host               string        `koanf:"host"`
	Port               int           `koanf:"port"`
	ReadTimeout        time.Duration `koanf:"read_timeout"`
	WriteTimeout       time.Duration `koanf:"write_timeout"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins        []string      `koanf:"cors_origins"`
	RateLimitPerMinute int           `koanf:"rate_limit_per_minute"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - TALENTMATCH_RECOMMEND_NEIGHBORHOOD_SIZE: Top-K similar users (default: 50)
//   - TALENTMATCH_RECOMMEND_MODEL_DIR: Snapshot directory, empty disables persistence
//   - TALENTMATCH_RECOMMEND_RELOAD_INTERVAL: Periodic snapshot reload, 0 disables
type RecommendConfig struct {
	NeighborhoodSize    int           `koanf:"neighborhood_size"`
	CollaborativeWeight float64       `koanf:"collaborative_weight"`
	ContentWeight       float64       `koanf:"content_weight"`
	MinInteractions     int           `koanf:"min_interactions"`
	ModelDir            string        `koanf:"model_dir"`
	SnapshotName        string        `koanf:"snapshot_name"`
	KeepSnapshots       int           `koanf:"keep_snapshots"`
	ReloadInterval      time.Duration `koanf:"reload_interval"`
	ReloadOnStartup     bool          `koanf:"reload_on_startup"`
	PopularFile         string        `koanf:"popular_file"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must not be negative, got %d", c.Server.RateLimitPerMinute)
	}
	if c.Recommend.ReloadInterval < 0 {
		return fmt.Errorf("recommend.reload_interval must not be negative, got %s", c.Recommend.ReloadInterval)
	}
	// Engine-level settings share the engine's own validation.
	engineCfg := c.EngineConfig()
	if err := engineCfg.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// EngineConfig converts the recommend section into the engine's config
// type.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		NeighborhoodSize: c.Recommend.NeighborhoodSize,
		Weights: recommend.HybridWeights{
			Collaborative: c.Recommend.CollaborativeWeight,
			Content:       c.Recommend.ContentWeight,
		},
		MinInteractions: c.Recommend.MinInteractions,
		ModelDir:        c.Recommend.ModelDir,
		SnapshotName:    c.Recommend.SnapshotName,
		KeepSnapshots:   c.Recommend.KeepSnapshots,
	}
}

// ListenAddr returns the host:port address for the HTTP server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
