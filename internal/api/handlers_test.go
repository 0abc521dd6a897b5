// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/workdev/talentmatch/internal/recommend"
)

func newTestServer(t *testing.T, modelDir string) (*Handler, http.Handler, *recommend.Engine) {
	t.Helper()
	cfg := recommend.DefaultConfig()
	cfg.ModelDir = modelDir

	engine, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	handler := NewHandler(engine)
	router := NewRouter(handler, RouterConfig{CORSOrigins: []string{"*"}})
	return handler, router, engine
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func trainingPayload() TrainRequest {
	events := []recommend.InteractionEvent{}
	for _, e := range []struct {
		user, project string
		typ           recommend.InteractionType
	}{
		{"dev1", "p1", recommend.InteractionApply},
		{"dev1", "p2", recommend.InteractionView},
		{"dev2", "p1", recommend.InteractionHire},
		{"dev2", "p3", recommend.InteractionApply},
		{"dev3", "p2", recommend.InteractionApply},
	} {
		events = append(events, recommend.InteractionEvent{
			UserID:     e.user,
			ProjectID:  e.project,
			Type:       e.typ,
			OccurredAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		})
	}
	return TrainRequest{Interactions: events}
}

func sampleDeveloper() recommend.DeveloperProfile {
	return recommend.DeveloperProfile{
		UserID:          "dev1",
		Skills:          []string{"go", "sql"},
		ExperienceLevel: recommend.ExperienceMid,
		HourlyRate:      80,
		AverageRating:   4.5,
		CompletionRate:  0.9,
		TotalReviews:    12,
		Availability:    recommend.Available,
	}
}

func sampleProject(id string, skills ...string) recommend.ProjectListing {
	now := time.Now()
	return recommend.ProjectListing{
		ID:             id,
		RequiredSkills: skills,
		Complexity:     recommend.ComplexityMedium,
		Budget:         recommend.BudgetSpec{Min: 60, Max: fptr(100)},
		CreatedAt:      &now,
	}
}

func fptr(v float64) *float64 { return &v }

// waitForModel polls until a trained snapshot is published.
func waitForModel(t *testing.T, engine *recommend.Engine) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if engine.Info().Loaded {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("model was not trained within deadline")
}

func TestHealthEndpoint(t *testing.T) {
	_, router, _ := newTestServer(t, "")

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	data := resp.Data.(map[string]interface{})
	if data["status"] != "ok" {
		t.Errorf("status = %v, want ok", data["status"])
	}
	if data["model_loaded"] != false {
		t.Errorf("model_loaded = %v, want false", data["model_loaded"])
	}
}

func TestRecommendProjectsValidation(t *testing.T) {
	_, router, _ := newTestServer(t, "")

	tests := []struct {
		name     string
		body     interface{}
		raw      string
		wantCode string
	}{
		{
			name:     "missing developer_id",
			body:     ProjectRecommendationRequest{Candidates: []recommend.ProjectListing{sampleProject("p1", "go")}},
			wantCode: ErrCodeValidationFailed,
		},
		{
			name:     "no candidates",
			body:     ProjectRecommendationRequest{DeveloperID: "dev1"},
			wantCode: ErrCodeValidationFailed,
		},
		{
			name:     "malformed JSON",
			raw:      "{not json",
			wantCode: ErrCodeBadRequest,
		},
		{
			name:     "unknown field rejected",
			raw:      `{"developer_id":"dev1","bogus_field":true}`,
			wantCode: ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tt.raw != "" {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/projects", strings.NewReader(tt.raw))
				rec = httptest.NewRecorder()
				router.ServeHTTP(rec, req)
			} else {
				rec = doJSON(t, router, http.MethodPost, "/api/v1/recommendations/projects", tt.body)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			resp := decodeResponse(t, rec)
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error code = %v, want %s", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestRecommendProjectsColdStart(t *testing.T) {
	_, router, engine := newTestServer(t, "")
	engine.SetPopularListings([]recommend.PopularListing{
		{ID: "pop1", RequiredSkills: []string{"go"}, ApplicationCount: 40},
		{ID: "pop2", RequiredSkills: []string{"rust"}, ApplicationCount: 10},
	})

	req := ProjectRecommendationRequest{
		DeveloperID: "new-dev",
		Developer:   sampleDeveloper(),
		Candidates:  []recommend.ProjectListing{sampleProject("p1", "go")},
	}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/recommendations/projects", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if data["model_version"] != "cold_start_v1" {
		t.Errorf("model_version = %v, want cold_start_v1", data["model_version"])
	}
	recs := data["recommendations"].([]interface{})
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	first := recs[0].(map[string]interface{})
	if first["candidate_id"] != "pop1" {
		t.Errorf("top candidate = %v, want pop1", first["candidate_id"])
	}
}

func TestTrainAndHybridRecommendations(t *testing.T) {
	_, router, engine := newTestServer(t, "")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/model/train", trainingPayload())
	if rec.Code != http.StatusAccepted {
		t.Fatalf("train status = %d, want 202: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if data["status"] != "training_started" {
		t.Errorf("status = %v, want training_started", data["status"])
	}

	waitForModel(t, engine)

	req := ProjectRecommendationRequest{
		DeveloperID: "dev1",
		Developer:   sampleDeveloper(),
		Candidates:  []recommend.ProjectListing{sampleProject("p1", "go"), sampleProject("p3", "rust")},
	}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/recommendations/projects", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("recommend status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	resp = decodeResponse(t, rec)
	data = resp.Data.(map[string]interface{})
	version, _ := data["model_version"].(string)
	if !strings.HasPrefix(version, "v1.0_") {
		t.Errorf("model_version = %q, want v1.0_ prefix", version)
	}
}

func TestTrainConflict(t *testing.T) {
	handler, router, _ := newTestServer(t, "")

	handler.trainBusy.Store(true)
	defer handler.trainBusy.Store(false)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/model/train", trainingPayload())
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != ErrCodeConflict {
		t.Errorf("error = %v, want %s", resp.Error, ErrCodeConflict)
	}
}

func TestTrainValidation(t *testing.T) {
	_, router, _ := newTestServer(t, "")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/model/train", TrainRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	bad := TrainRequest{Interactions: []recommend.InteractionEvent{
		{UserID: "dev1", ProjectID: "p1", Type: "bookmark"},
	}}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/model/train", bad)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for unknown interaction type", rec.Code)
	}
}

func TestSimilarProjectsEndpoint(t *testing.T) {
	_, router, engine := newTestServer(t, "")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/recommendations/similar-projects", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing project_id: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/recommendations/similar-projects?project_id=p1", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("untrained: status = %d, want 409", rec.Code)
	}

	if _, err := engine.Train(t.Context(), trainingPayload().Interactions); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/recommendations/similar-projects?project_id=p1&limit=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if data["project_id"] != "p1" {
		t.Errorf("project_id = %v, want p1", data["project_id"])
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/recommendations/similar-projects?project_id=ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown item: status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/recommendations/similar-projects?project_id=p1&limit=999", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("oversized limit: status = %d, want 400", rec.Code)
	}
}

func TestReloadModelEndpoint(t *testing.T) {
	t.Run("persistence disabled", func(t *testing.T) {
		_, router, _ := newTestServer(t, "")
		rec := doJSON(t, router, http.MethodPost, "/api/v1/model/reload", nil)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("nothing persisted", func(t *testing.T) {
		_, router, _ := newTestServer(t, t.TempDir())
		rec := doJSON(t, router, http.MethodPost, "/api/v1/model/reload", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("reload after train", func(t *testing.T) {
		dir := t.TempDir()
		_, router, engine := newTestServer(t, dir)
		if _, err := engine.Train(t.Context(), trainingPayload().Interactions); err != nil {
			t.Fatalf("Train() error = %v", err)
		}

		rec := doJSON(t, router, http.MethodPost, "/api/v1/model/reload", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		resp := decodeResponse(t, rec)
		data := resp.Data.(map[string]interface{})
		if data["status"] != "reloaded" {
			t.Errorf("status = %v, want reloaded", data["status"])
		}
	})
}

func TestModelInfoEndpoint(t *testing.T) {
	_, router, engine := newTestServer(t, "")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/model/info", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if data["model_loaded"] != false {
		t.Errorf("model_loaded = %v, want false", data["model_loaded"])
	}

	if _, err := engine.Train(t.Context(), trainingPayload().Interactions); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/model/info", nil)
	resp = decodeResponse(t, rec)
	data = resp.Data.(map[string]interface{})
	if data["model_loaded"] != true {
		t.Errorf("model_loaded = %v, want true after training", data["model_loaded"])
	}
	if data["num_users"].(float64) != 3 {
		t.Errorf("num_users = %v, want 3", data["num_users"])
	}
}

func TestUpdatePopularEndpoint(t *testing.T) {
	_, router, _ := newTestServer(t, "")

	req := PopularRequest{Listings: []recommend.PopularListing{
		{ID: "pop1", RequiredSkills: []string{"go"}, ApplicationCount: 30},
	}}
	rec := doJSON(t, router, http.MethodPut, "/api/v1/model/popular", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if data["count"].(float64) != 1 {
		t.Errorf("count = %v, want 1", data["count"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	_, router, _ := newTestServer(t, "")

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing from response")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("X-Request-ID = %q, want fixed-id", got)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	_, router, _ := newTestServer(t, "")

	rec := doJSON(t, router, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("metrics output missing runtime collector series")
	}
}
