// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"

	"github.com/workdev/talentmatch/internal/api"
	"github.com/workdev/talentmatch/internal/config"
	"github.com/workdev/talentmatch/internal/logging"
	"github.com/workdev/talentmatch/internal/recommend"
	"github.com/workdev/talentmatch/internal/supervisor"
	"github.com/workdev/talentmatch/internal/supervisor/services"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Config errors surface through the default logger since the
		// configured one is not available yet.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("addr", cfg.ListenAddr()).
		Str("model_dir", cfg.Recommend.ModelDir).
		Dur("reload_interval", cfg.Recommend.ReloadInterval).
		Msg("Starting TalentMatch")

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize matching engine")
	}

	if cfg.Recommend.PopularFile != "" {
		if err := seedPopularListings(engine, cfg.Recommend.PopularFile); err != nil {
			logging.Fatal().Err(err).Str("file", cfg.Recommend.PopularFile).Msg("Failed to load popular listings")
		}
	}

	handler := api.NewHandler(engine)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:        cfg.Server.CORSOrigins,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
	})

	server := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	tree.AddModelService(services.NewRefresherService(engine, services.RefresherConfig{
		Interval:        cfg.Recommend.ReloadInterval,
		ReloadOnStartup: cfg.Recommend.ReloadOnStartup,
	}, logging.Logger()))

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Service stopped gracefully")
}

// seedPopularListings loads the curated cold-start listings from a
// JSON file holding an array of popular listings.
func seedPopularListings(engine *recommend.Engine, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return fmt.Errorf("read popular listings: %w", err)
	}

	var listings []recommend.PopularListing
	if err := json.Unmarshal(data, &listings); err != nil {
		return fmt.Errorf("parse popular listings: %w", err)
	}

	engine.SetPopularListings(listings)
	logging.Info().Int("count", len(listings)).Msg("Seeded popular listings")
	return nil
}
