// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import "time"

// InteractionType classifies a developer's interaction with a project.
type InteractionType string

// Interaction types, ordered by increasing strength of intent.
const (
	InteractionView  InteractionType = "view"
	InteractionApply InteractionType = "apply"
	InteractionHire  InteractionType = "hire"
)

// Weight returns the matrix weight for the interaction type. The second
// return is false for unrecognized types, which are excluded from training.
func (t InteractionType) Weight() (float64, bool) {
	switch t {
	case InteractionView:
		return 1, true
	case InteractionApply:
		return 3, true
	case InteractionHire:
		return 5, true
	default:
		return 0, false
	}
}

// InteractionEvent is a single developer-project interaction used for
// training. Events are aggregated additively into the interaction matrix.
type InteractionEvent struct {
	UserID     string          `json:"user_id" validate:"required"`
	ProjectID  string          `json:"project_id" validate:"required"`
	Type       InteractionType `json:"interaction_type" validate:"required,oneof=view apply hire"`
	OccurredAt time.Time       `json:"timestamp"`
}

// ExperienceLevel is a developer's self-reported seniority.
type ExperienceLevel string

// Experience levels in ascending order.
const (
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceExpert ExperienceLevel = "expert"
)

// ordinal maps the level onto the 1-4 scale shared with project
// complexity. Unrecognized values fall back to the middle of the scale.
func (l ExperienceLevel) ordinal() int {
	switch l {
	case ExperienceJunior:
		return 1
	case ExperienceMid:
		return 2
	case ExperienceSenior:
		return 3
	case ExperienceExpert:
		return 4
	default:
		return 2
	}
}

// ComplexityLevel is a project's stated complexity.
type ComplexityLevel string

// Complexity levels in ascending order.
const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
	ComplexityExpert ComplexityLevel = "expert"
)

func (c ComplexityLevel) ordinal() int {
	switch c {
	case ComplexityLow:
		return 1
	case ComplexityMedium:
		return 2
	case ComplexityHigh:
		return 3
	case ComplexityExpert:
		return 4
	default:
		return 2
	}
}

// RemotePreference is a developer's stated remote-work preference.
type RemotePreference string

const (
	RemoteOnly   RemotePreference = "remote_only"
	OnsiteOnly   RemotePreference = "onsite_only"
	Hybrid       RemotePreference = "hybrid"
	NoPreference RemotePreference = "no_preference"
)

// AvailabilityStatus is a developer's current capacity for new work.
type AvailabilityStatus string

const (
	Available          AvailabilityStatus = "available"
	PartiallyAvailable AvailabilityStatus = "partially_available"
	Busy               AvailabilityStatus = "busy"
)

// Preferences captures the optional matching preferences of a developer.
// Only dimensions the developer actually specified participate in the
// preference_match factor.
type Preferences struct {
	ProjectTypes     []string         `json:"project_types,omitempty"`
	RemotePreference RemotePreference `json:"remote_preference,omitempty" validate:"omitempty,oneof=remote_only onsite_only hybrid no_preference"`
	Industries       []string         `json:"industries,omitempty"`
}

// DeveloperProfile describes a developer for scoring purposes.
type DeveloperProfile struct {
	UserID          string             `json:"user_id" validate:"required"`
	Skills          []string           `json:"skills"`
	ExperienceLevel ExperienceLevel    `json:"experience_level" validate:"required,oneof=junior mid senior expert"`
	HourlyRate      float64            `json:"hourly_rate" validate:"gt=0"`
	Preferences     Preferences        `json:"preferences"`
	AverageRating   float64            `json:"average_rating" validate:"gte=0,lte=5"`
	CompletionRate  float64            `json:"completion_rate" validate:"gte=0,lte=1"`
	TotalReviews    int                `json:"total_reviews" validate:"gte=0"`
	Availability    AvailabilityStatus `json:"availability_status" validate:"omitempty,oneof=available partially_available busy"`
}

// BudgetSpec is a project's budget, either a fixed amount with an assumed
// hour count or an hourly range. A nil Max marks an open-ended range; the
// sentinel is deliberate so that "no upper bound" never leaks into
// arithmetic as an infinity.
type BudgetSpec struct {
	Fixed          *float64 `json:"fixed,omitempty" validate:"omitempty,gt=0"`
	EstimatedHours float64  `json:"estimated_hours,omitempty" validate:"gte=0"`
	Min            float64  `json:"min,omitempty" validate:"gte=0"`
	Max            *float64 `json:"max,omitempty" validate:"omitempty,gt=0"`
}

// IsZero reports whether no budget information was provided at all.
func (b BudgetSpec) IsZero() bool {
	return b.Fixed == nil && b.Min == 0 && b.Max == nil
}

// HasUpperBound reports whether the range has an explicit upper bound.
func (b BudgetSpec) HasUpperBound() bool {
	return b.Max != nil
}

// ProjectListing describes a candidate project for scoring purposes.
type ProjectListing struct {
	ID             string          `json:"id" validate:"required"`
	RequiredSkills []string        `json:"required_skills"`
	Complexity     ComplexityLevel `json:"complexity_level" validate:"omitempty,oneof=low medium high expert"`
	Budget         BudgetSpec      `json:"budget_range"`
	ProjectType    string          `json:"project_type,omitempty"`
	IsRemote       bool            `json:"is_remote"`
	Industry       string          `json:"industry,omitempty"`
	CreatedAt      *time.Time      `json:"created_at,omitempty"`
}

// HybridWeights blends the collaborative and content scores for project
// search. The weights are applied as given and deliberately not
// renormalized, so callers can scale overall relevance if they want to.
type HybridWeights struct {
	Collaborative float64 `json:"collaborative"`
	Content       float64 `json:"content"`
}

// DefaultHybridWeights returns the standard 60/40 collaborative/content
// blend.
func DefaultHybridWeights() HybridWeights {
	return HybridWeights{Collaborative: 0.6, Content: 0.4}
}

// Recommendation is one ranked candidate with its score breakdown.
// CandidateID is a project id for project search and a developer user id
// for talent search. CollaborativeScore is zero for talent search, which
// carries no collaborative term.
type Recommendation struct {
	CandidateID        string             `json:"candidate_id"`
	RelevanceScore     float64            `json:"relevance_score"`
	RankPosition       int                `json:"rank_position"`
	CollaborativeScore float64            `json:"collaborative_score,omitempty"`
	ContentScore       float64            `json:"content_score"`
	Factors            map[string]float64 `json:"factors,omitempty"`
	Reasons            []string           `json:"reasons,omitempty"`
	ModelVersion       string             `json:"model_version"`
}

// PopularListing is one entry of the externally curated popular-project
// set used by the cold-start fallback.
type PopularListing struct {
	ID               string   `json:"id" validate:"required"`
	RequiredSkills   []string `json:"required_skills"`
	ApplicationCount int      `json:"application_count" validate:"gte=0"`
}

// ModelInfo summarizes the currently published snapshot.
type ModelInfo struct {
	Version   string  `json:"model_version"`
	Loaded    bool    `json:"model_loaded"`
	UserCount int     `json:"num_users"`
	ItemCount int     `json:"num_projects"`
	Sparsity  float64 `json:"matrix_sparsity"`
}

// SimilarItem is one entry of an item-to-item similarity lookup.
type SimilarItem struct {
	ProjectID  string  `json:"project_id"`
	Similarity float64 `json:"similarity"`
}
