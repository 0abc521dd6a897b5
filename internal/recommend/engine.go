// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/workdev/talentmatch/internal/metrics"
	"github.com/workdev/talentmatch/internal/recommend/storage"
)

// defaultLimit applies when a query does not specify a result count.
const defaultLimit = 10

// evaluationCutoffs are the K values reported by training evaluation.
var evaluationCutoffs = []int{5, 10, 20}

// ProjectQuery asks for the best projects for a developer.
type ProjectQuery struct {
	DeveloperID         string
	Developer           DeveloperProfile
	Candidates          []ProjectListing
	Limit               int
	Weights             *HybridWeights
	IncludeExplanations bool
}

// TalentQuery asks for the best developers for a project.
type TalentQuery struct {
	Project             ProjectListing
	Candidates          []DeveloperProfile
	Limit               int
	IncludeExplanations bool
}

// TrainReport summarizes a completed training run.
type TrainReport struct {
	Version          string            `json:"model_version"`
	UserCount        int               `json:"num_users"`
	ItemCount        int               `json:"num_projects"`
	InteractionCount int               `json:"num_interactions"`
	Sparsity         float64           `json:"matrix_sparsity"`
	Duration         time.Duration     `json:"-"`
	Evaluation       EvaluationMetrics `json:"evaluation"`
	Business         BusinessMetrics   `json:"business"`
}

// Engine ranks candidates in both directions and owns the model
// lifecycle: train, publish, persist, reload.
//
// Scoring never blocks on training. A request resolves the current
// snapshot once at the start and scores against it even if a new snapshot
// is published mid-flight.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	registry *Registry
	store    *storage.Store

	projectProfile ScoringProfile
	talentProfile  ScoringProfile

	// trainMu serializes training runs; TryLock turns a second
	// concurrent train into ErrTrainingInProgress instead of a queue.
	trainMu sync.Mutex

	popularMu sync.RWMutex
	popular   []PopularListing

	now func() time.Time
}

// NewEngine creates an engine with the given configuration. When a model
// directory is configured, the snapshot store is opened immediately so
// permission problems surface at startup rather than at first save.
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}

	e := &Engine{
		config:         cfg.Clone(),
		logger:         logger.With().Str("component", "recommend").Logger(),
		registry:       &Registry{},
		projectProfile: ProjectSearchProfile(),
		talentProfile:  TalentSearchProfile(),
		now:            time.Now,
	}

	if cfg.ModelDir != "" {
		store, err := storage.NewStore(cfg.ModelDir)
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		e.store = store
	}
	return e, nil
}

// RecommendProjects ranks candidate projects for a developer. With a
// published snapshot the relevance blends collaborative and content
// scores; without one the curated popularity fallback serves the request.
func (e *Engine) RecommendProjects(ctx context.Context, q ProjectQuery) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := e.now()
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	snap, trained := e.registry.Current()
	if !trained {
		e.popularMu.RLock()
		popular := e.popular
		e.popularMu.RUnlock()

		recs := coldStartRecommendations(popular, &q.Developer, limit)
		metrics.RecommendationRequests.WithLabelValues("projects", "cold_start").Inc()
		metrics.RecommendationDuration.WithLabelValues("projects").Observe(e.now().Sub(start).Seconds())
		e.logger.Debug().
			Str("user_id", q.DeveloperID).
			Int("results", len(recs)).
			Msg("served cold-start recommendations")
		return recs, nil
	}

	weights := e.config.Weights
	if q.Weights != nil {
		weights = *q.Weights
	}

	ids := make([]string, len(q.Candidates))
	for i, c := range q.Candidates {
		ids[i] = c.ID
	}
	collab := collaborativeScores(snap, q.DeveloperID, ids, e.config.NeighborhoodSize)

	now := e.now()
	recs := make([]Recommendation, 0, len(q.Candidates))
	for i := range q.Candidates {
		project := &q.Candidates[i]
		content, factors := e.projectProfile.Score(MatchInput{
			Developer: &q.Developer,
			Project:   project,
			Now:       now,
		})
		collabScore := collab[project.ID]
		rec := Recommendation{
			CandidateID:        project.ID,
			RelevanceScore:     round4(collabScore*weights.Collaborative + content*weights.Content),
			CollaborativeScore: round4(collabScore),
			ContentScore:       content,
			Factors:            factors,
			ModelVersion:       snap.Version,
		}
		if q.IncludeExplanations {
			rec.Reasons = explain(ProjectSearch, factors, collabScore)
		}
		recs = append(recs, rec)
	}

	rankAndTruncate(recs, limit)
	metrics.RecommendationRequests.WithLabelValues("projects", "hybrid").Inc()
	metrics.RecommendationCandidates.WithLabelValues("projects").Observe(float64(len(q.Candidates)))
	metrics.RecommendationDuration.WithLabelValues("projects").Observe(e.now().Sub(start).Seconds())
	return recs[:min(limit, len(recs))], nil
}

// RecommendTalent ranks candidate developers for a project. The score is
// content-only; there is no collaborative term in this direction.
func (e *Engine) RecommendTalent(ctx context.Context, q TalentQuery) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := e.now()
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	version := contentOnlyVersion
	if snap, ok := e.registry.Current(); ok {
		version = snap.Version
	}

	now := e.now()
	recs := make([]Recommendation, 0, len(q.Candidates))
	for i := range q.Candidates {
		dev := &q.Candidates[i]
		content, factors := e.talentProfile.Score(MatchInput{
			Developer: dev,
			Project:   &q.Project,
			Now:       now,
		})
		rec := Recommendation{
			CandidateID:    dev.UserID,
			RelevanceScore: content,
			ContentScore:   content,
			Factors:        factors,
			ModelVersion:   version,
		}
		if q.IncludeExplanations {
			rec.Reasons = explain(TalentSearch, factors, 0)
		}
		recs = append(recs, rec)
	}

	rankAndTruncate(recs, limit)
	metrics.RecommendationRequests.WithLabelValues("talent", "content").Inc()
	metrics.RecommendationCandidates.WithLabelValues("talent").Observe(float64(len(q.Candidates)))
	metrics.RecommendationDuration.WithLabelValues("talent").Observe(e.now().Sub(start).Seconds())
	return recs[:min(limit, len(recs))], nil
}

// contentOnlyVersion labels talent results served before any model has
// been trained or loaded.
const contentOnlyVersion = "content_v1"

// rankAndTruncate sorts by descending relevance, keeping input order on
// ties, trims to limit, and assigns rank positions.
func rankAndTruncate(recs []Recommendation, limit int) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RelevanceScore > recs[j].RelevanceScore
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	for i := range recs {
		recs[i].RankPosition = i + 1
	}
}

// Train builds a new snapshot from the given events and publishes it
// atomically. Only one training run executes at a time; a concurrent call
// fails fast with ErrTrainingInProgress. The current snapshot keeps
// serving until the new one is published, and stays untouched if training
// fails at any point.
func (e *Engine) Train(ctx context.Context, events []InteractionEvent) (*TrainReport, error) {
	if !e.trainMu.TryLock() {
		metrics.TrainingRuns.WithLabelValues("rejected").Inc()
		return nil, ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := e.now()

	if len(events) < e.config.MinInteractions {
		metrics.TrainingRuns.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %d events, need at least %d",
			ErrNoTrainingData, len(events), e.config.MinInteractions)
	}

	matrix := BuildInteractionMatrix(events)
	if matrix.Empty() {
		metrics.TrainingRuns.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: no usable events after filtering", ErrNoTrainingData)
	}

	similarity := CosineSimilarityMatrix(matrix)
	trainedAt := e.now()
	snap := NewModelSnapshot(snapshotVersion(trainedAt), trainedAt, matrix, similarity)

	report := &TrainReport{
		Version:          snap.Version,
		UserCount:        len(snap.UserIDs),
		ItemCount:        len(snap.ItemIDs),
		InteractionCount: len(events),
		Sparsity:         snap.Sparsity(),
		Evaluation:       evaluateSnapshot(snap, events, e.config.NeighborhoodSize, evaluationCutoffs),
		Business:         businessMetrics(events),
	}

	// Persistence failure is logged, not fatal: the in-memory snapshot
	// is valid and should still serve.
	if e.store != nil {
		if err := e.persistSnapshot(snap, report); err != nil {
			e.logger.Error().Err(err).Str("version", snap.Version).Msg("failed to persist snapshot")
		}
	}

	e.registry.Publish(snap)
	metrics.SetModelGauges(report.UserCount, report.ItemCount, report.Sparsity)
	metrics.TrainingRuns.WithLabelValues("success").Inc()
	report.Duration = e.now().Sub(start)
	metrics.TrainingDuration.Observe(report.Duration.Seconds())

	e.logger.Info().
		Str("version", snap.Version).
		Int("users", report.UserCount).
		Int("projects", report.ItemCount).
		Int("interactions", report.InteractionCount).
		Float64("sparsity", report.Sparsity).
		Dur("duration", report.Duration).
		Msg("trained and published model snapshot")
	return report, nil
}

func (e *Engine) persistSnapshot(snap *ModelSnapshot, report *TrainReport) error {
	state := storage.SnapshotState{
		Version:    snap.Version,
		TrainedAt:  snap.TrainedAt,
		UserIDs:    snap.UserIDs,
		ItemIDs:    snap.ItemIDs,
		Matrix:     snap.Matrix,
		Similarity: snap.Similarity,
	}
	meta := storage.SnapshotMetadata{
		TrainedAt:        snap.TrainedAt,
		UserCount:        report.UserCount,
		ItemCount:        report.ItemCount,
		Sparsity:         report.Sparsity,
		InteractionCount: report.InteractionCount,
	}
	if err := e.store.Save(e.config.SnapshotName, state, meta); err != nil {
		return err
	}
	if e.config.KeepSnapshots > 0 {
		if err := e.store.Prune(e.config.SnapshotName, e.config.KeepSnapshots); err != nil {
			e.logger.Warn().Err(err).Msg("failed to prune old snapshots")
		}
	}
	return nil
}

// ReloadLatest loads the newest persisted snapshot and publishes it.
// Returns the published version. A missing snapshot maps to
// ErrModelNotFound; a corrupt one fails the load and leaves the current
// snapshot serving.
func (e *Engine) ReloadLatest(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if e.store == nil {
		return "", ErrPersistenceDisabled
	}

	state, meta, err := e.store.Load(e.config.SnapshotName, "")
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrModelNotFound
		}
		return "", fmt.Errorf("load snapshot: %w", err)
	}

	snap := &ModelSnapshot{
		Version:    state.Version,
		TrainedAt:  state.TrainedAt,
		UserIDs:    state.UserIDs,
		ItemIDs:    state.ItemIDs,
		Matrix:     state.Matrix,
		Similarity: state.Similarity,
	}
	snap.restoreIndices()

	e.registry.Publish(snap)
	metrics.SetModelGauges(len(snap.UserIDs), len(snap.ItemIDs), snap.Sparsity())
	e.logger.Info().
		Str("version", snap.Version).
		Time("trained_at", meta.TrainedAt).
		Msg("reloaded model snapshot from disk")
	return snap.Version, nil
}

// SimilarProjects returns the projects most similar to the given one,
// derived from column cosine over the current interaction matrix.
func (e *Engine) SimilarProjects(ctx context.Context, projectID string, limit int) ([]SimilarItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, ok := e.registry.Current()
	if !ok {
		return nil, ErrModelNotTrained
	}
	col, ok := snap.ItemIndex(projectID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, projectID)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	similar := make([]SimilarItem, 0, len(snap.ItemIDs)-1)
	for i, id := range snap.ItemIDs {
		if i == col {
			continue
		}
		similar = append(similar, SimilarItem{
			ProjectID:  id,
			Similarity: round4(columnCosine(snap.Matrix, col, i)),
		})
	}
	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Similarity > similar[j].Similarity
	})
	if len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}

// SetPopularListings replaces the curated popular set used by the
// cold-start fallback.
func (e *Engine) SetPopularListings(listings []PopularListing) {
	copied := make([]PopularListing, len(listings))
	copy(copied, listings)

	e.popularMu.Lock()
	e.popular = copied
	e.popularMu.Unlock()

	e.logger.Info().Int("count", len(copied)).Msg("updated popular listings")
}

// Info summarizes the currently published snapshot.
func (e *Engine) Info() ModelInfo {
	snap, ok := e.registry.Current()
	if !ok {
		return ModelInfo{Version: coldStartVersion, Loaded: false, Sparsity: 1}
	}
	return ModelInfo{
		Version:   snap.Version,
		Loaded:    true,
		UserCount: len(snap.UserIDs),
		ItemCount: len(snap.ItemIDs),
		Sparsity:  snap.Sparsity(),
	}
}
