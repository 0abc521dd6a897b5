// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/workdev/talentmatch/internal/recommend"
)

// ModelReloader is the engine surface the refresher needs, kept small
// to avoid coupling the service to the full engine.
type ModelReloader interface {
	// ReloadLatest publishes the newest persisted snapshot and
	// returns its version.
	ReloadLatest(ctx context.Context) (string, error)

	// Info describes the currently published snapshot.
	Info() recommend.ModelInfo
}

// RefresherConfig holds configuration for the snapshot refresher.
type RefresherConfig struct {
	// Interval is how often to check for newer persisted snapshots.
	Interval time.Duration

	// ReloadOnStartup loads the latest snapshot when the service
	// starts, so a restarted instance serves a warm model.
	ReloadOnStartup bool
}

// RefresherService periodically reloads the newest persisted model
// snapshot. In multi-instance deployments one instance trains and the
// others pick up the published snapshot from shared storage.
type RefresherService struct {
	reloader ModelReloader
	config   RefresherConfig
	logger   zerolog.Logger
	name     string
}

// NewRefresherService creates a new snapshot refresher.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefresherService(reloader ModelReloader, cfg RefresherConfig, logger zerolog.Logger) *RefresherService {
	return &RefresherService{
		reloader: reloader,
		config:   cfg,
		logger:   logger.With().Str("service", "model-refresher").Logger(),
		name:     "model-refresher",
	}
}

// Serve implements the suture.Service interface.
func (s *RefresherService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Bool("reload_on_startup", s.config.ReloadOnStartup).
		Msg("snapshot refresher starting")

	if s.config.ReloadOnStartup {
		s.refresh(ctx)
	}

	if s.config.Interval <= 0 {
		// Nothing periodic to do; park until shutdown so the
		// supervisor does not restart-loop this service.
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("snapshot refresher shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh reloads the newest snapshot, skipping the publish when the
// stored version matches the one already serving.
func (s *RefresherService) refresh(ctx context.Context) {
	before := s.reloader.Info()

	version, err := s.reloader.ReloadLatest(ctx)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrModelNotFound):
			s.logger.Debug().Msg("no persisted snapshot to load")
		case errors.Is(err, recommend.ErrPersistenceDisabled):
			s.logger.Debug().Msg("model persistence disabled")
		case errors.Is(err, context.Canceled):
		default:
			s.logger.Warn().Err(err).Msg("snapshot reload failed")
		}
		return
	}

	if before.Loaded && before.Version == version {
		s.logger.Debug().Str("model_version", version).Msg("snapshot unchanged")
		return
	}
	s.logger.Info().Str("model_version", version).Msg("published refreshed snapshot")
}

// String returns the service name for logging.
func (s *RefresherService) String() string {
	return s.name
}
