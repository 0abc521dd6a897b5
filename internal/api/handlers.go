// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/workdev/talentmatch/internal/logging"
	"github.com/workdev/talentmatch/internal/recommend"
	"github.com/workdev/talentmatch/internal/validation"
)

// trainTimeout bounds a background training run.
const trainTimeout = 10 * time.Minute

// Handler contains dependencies for the API handlers.
type Handler struct {
	engine    *recommend.Engine
	startTime time.Time

	// trainBusy serializes training requests at the HTTP layer so a
	// second request gets an immediate 409 instead of queueing.
	trainBusy atomic.Bool
}

// NewHandler creates the API handler around a matching engine.
func NewHandler(engine *recommend.Engine) *Handler {
	return &Handler{
		engine:    engine,
		startTime: time.Now(),
	}
}

// RecommendProjects handles POST /api/v1/recommendations/projects.
func (h *Handler) RecommendProjects(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ProjectRecommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError("request validation failed", verr.Details())
		return
	}

	recs, err := h.engine.RecommendProjects(r.Context(), recommend.ProjectQuery{
		DeveloperID:         req.DeveloperID,
		Developer:           req.Developer,
		Candidates:          req.Candidates,
		Limit:               req.Limit,
		Weights:             req.Weights,
		IncludeExplanations: includeExplanations(req.IncludeExplanations),
	})
	if err != nil {
		h.recommendError(rw, r, err)
		return
	}

	rw.Success(recommendationResponse(recs, h.engine.Info().Version))
}

// RecommendTalent handles POST /api/v1/recommendations/talent.
func (h *Handler) RecommendTalent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req TalentRecommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError("request validation failed", verr.Details())
		return
	}

	recs, err := h.engine.RecommendTalent(r.Context(), recommend.TalentQuery{
		Project:             req.Project,
		Candidates:          req.Candidates,
		Limit:               req.Limit,
		IncludeExplanations: includeExplanations(req.IncludeExplanations),
	})
	if err != nil {
		h.recommendError(rw, r, err)
		return
	}

	rw.Success(recommendationResponse(recs, h.engine.Info().Version))
}

// SimilarProjects handles GET /api/v1/recommendations/similar-projects.
func (h *Handler) SimilarProjects(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		rw.BadRequest("project_id query parameter is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			rw.BadRequest("limit must be an integer between 1 and 50")
			return
		}
		limit = parsed
	}

	similar, err := h.engine.SimilarProjects(r.Context(), projectID, limit)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrModelNotTrained):
			rw.Conflict("no trained model available")
		case errors.Is(err, recommend.ErrUnknownItem):
			rw.NotFound("project not present in the trained model: " + projectID)
		default:
			h.recommendError(rw, r, err)
		}
		return
	}

	rw.Success(SimilarProjectsResponse{
		ProjectID: projectID,
		Similar:   similar,
		Count:     len(similar),
	})
}

// TrainModel handles POST /api/v1/model/train. Training runs in the
// background; the request returns 202 immediately.
func (h *Handler) TrainModel(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req TrainRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError("request validation failed", verr.Details())
		return
	}

	if !h.trainBusy.CompareAndSwap(false, true) {
		rw.Conflict("a training run is already in progress")
		return
	}

	go func(events []recommend.InteractionEvent) {
		defer h.trainBusy.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), trainTimeout)
		defer cancel()

		report, err := h.engine.Train(ctx, events)
		if err != nil {
			logging.Error().Err(err).Int("num_interactions", len(events)).Msg("background training failed")
			return
		}
		logging.Info().
			Str("model_version", report.Version).
			Int("num_users", report.UserCount).
			Int("num_projects", report.ItemCount).
			Msg("background training completed")
	}(req.Interactions)

	rw.Accepted(map[string]interface{}{
		"status":           "training_started",
		"num_interactions": len(req.Interactions),
	})
}

// ReloadModel handles POST /api/v1/model/reload.
func (h *Handler) ReloadModel(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	version, err := h.engine.ReloadLatest(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrModelNotFound):
			rw.NotFound("no persisted model snapshot found")
		case errors.Is(err, recommend.ErrPersistenceDisabled):
			rw.Conflict("model persistence is disabled")
		default:
			logger := logging.FromContext(r.Context())
			logger.Error().Err(err).Msg("model reload failed")
			rw.InternalError("failed to reload model")
		}
		return
	}

	rw.Success(map[string]interface{}{
		"status":        "reloaded",
		"model_version": version,
	})
}

// ModelInfo handles GET /api/v1/model/info.
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.Info())
}

// UpdatePopular handles PUT /api/v1/model/popular.
func (h *Handler) UpdatePopular(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req PopularRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError("request validation failed", verr.Details())
		return
	}

	h.engine.SetPopularListings(req.Listings)
	rw.Success(map[string]interface{}{"count": len(req.Listings)})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"model_loaded":   h.engine.Info().Loaded,
	})
}

// recommendError maps engine failures to HTTP responses.
func (h *Handler) recommendError(rw *ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "request cancelled")
		return
	}
	logger := logging.FromContext(r.Context())
	logger.Error().Err(err).Msg("recommendation request failed")
	rw.InternalError("recommendation request failed")
}

func recommendationResponse(recs []recommend.Recommendation, fallbackVersion string) RecommendationResponse {
	version := fallbackVersion
	if len(recs) > 0 {
		version = recs[0].ModelVersion
	}
	return RecommendationResponse{
		Recommendations: recs,
		Count:           len(recs),
		ModelVersion:    version,
	}
}
