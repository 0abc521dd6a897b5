// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the routing-level settings.
type RouterConfig struct {
	// CORSOrigins lists the allowed origins for browser clients.
	CORSOrigins []string

	// RateLimitPerMinute caps requests per client IP on the API
	// routes. Zero disables rate limiting.
	RateLimitPerMinute int
}

// NewRouter wires the full route tree with the global middleware
// stack.
func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(MetricsMiddleware())
		if cfg.RateLimitPerMinute > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
		}

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/projects", handler.RecommendProjects)
			r.Post("/talent", handler.RecommendTalent)
			r.Get("/similar-projects", handler.SimilarProjects)
		})

		r.Route("/model", func(r chi.Router) {
			r.Post("/train", handler.TrainModel)
			r.Post("/reload", handler.ReloadModel)
			r.Get("/info", handler.ModelInfo)
			r.Put("/popular", handler.UpdatePopular)
		})
	})

	return r
}
