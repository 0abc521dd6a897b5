// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package api

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/workdev/talentmatch/internal/recommend"
)

// maxRequestBodyBytes caps request bodies at 10 MiB. Training payloads
// carry interaction histories and are the largest expected bodies.
const maxRequestBodyBytes = 10 << 20

// ProjectRecommendationRequest asks for the best projects for a
// developer.
type ProjectRecommendationRequest struct {
	DeveloperID         string                     `json:"developer_id" validate:"required"`
	Developer           recommend.DeveloperProfile `json:"developer_profile"`
	Candidates          []recommend.ProjectListing `json:"candidate_projects" validate:"required,min=1,dive"`
	Limit               int                        `json:"limit" validate:"omitempty,min=1,max=50"`
	Weights             *recommend.HybridWeights   `json:"hybrid_weights,omitempty"`
	IncludeExplanations *bool                      `json:"include_explanations,omitempty"`
}

// TalentRecommendationRequest asks for the best developers for a
// project.
type TalentRecommendationRequest struct {
	Project             recommend.ProjectListing     `json:"project"`
	Candidates          []recommend.DeveloperProfile `json:"candidate_developers" validate:"required,min=1,dive"`
	Limit               int                          `json:"limit" validate:"omitempty,min=1,max=50"`
	IncludeExplanations *bool                        `json:"include_explanations,omitempty"`
}

// TrainRequest carries the interaction history for a training run.
type TrainRequest struct {
	Interactions []recommend.InteractionEvent `json:"interactions" validate:"required,min=1,dive"`
}

// PopularRequest replaces the curated popular listings used for
// cold-start recommendations.
type PopularRequest struct {
	Listings []recommend.PopularListing `json:"listings" validate:"required,dive"`
}

// RecommendationResponse is the payload for both recommendation
// directions.
type RecommendationResponse struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Count           int                        `json:"count"`
	ModelVersion    string                     `json:"model_version"`
}

// SimilarProjectsResponse is the payload of the similar-projects
// lookup.
type SimilarProjectsResponse struct {
	ProjectID string                  `json:"project_id"`
	Similar   []recommend.SimilarItem `json:"similar_projects"`
	Count     int                     `json:"count"`
}

// decodeJSON decodes a request body into dst, rejecting unknown fields
// and oversized bodies.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// includeExplanations resolves the optional flag, defaulting to true.
func includeExplanations(flag *bool) bool {
	if flag == nil {
		return true
	}
	return *flag
}
