// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import (
	"math"
	"time"
)

// Factor names shared by scoring and explanation generation.
const (
	factorSkillMatch      = "skill_match"
	factorExperienceMatch = "experience_match"
	factorBudgetFit       = "budget_fit"
	factorRecency         = "recency"
	factorPreferenceMatch = "preference_match"
	factorReputation      = "reputation"
	factorAvailability    = "availability"
)

// MatchInput pairs the developer and project being scored against each
// other. Both directions use the same input; the scoring profile decides
// which factors apply.
type MatchInput struct {
	Developer *DeveloperProfile
	Project   *ProjectListing
	Now       time.Time
}

// WeightedFactor is one named factor of a scoring profile.
type WeightedFactor struct {
	Name   string
	Weight float64
	Score  func(in MatchInput) float64
}

// ScoringProfile is an ordered list of weighted factors. The composite
// content score is the weighted sum of the factor scores, each rounded to
// four decimals before weighting.
type ScoringProfile struct {
	Name    string
	Factors []WeightedFactor
}

// ProjectSearchProfile scores candidate projects for a developer.
func ProjectSearchProfile() ScoringProfile {
	return ScoringProfile{
		Name: "project_search",
		Factors: []WeightedFactor{
			{factorSkillMatch, 0.35, func(in MatchInput) float64 {
				return skillMatchScore(in.Developer.Skills, in.Project.RequiredSkills)
			}},
			{factorExperienceMatch, 0.20, experienceMatchScore},
			{factorBudgetFit, 0.25, budgetFitScore},
			{factorRecency, 0.10, func(in MatchInput) float64 {
				return recencyScore(in.Project.CreatedAt, in.Now)
			}},
			{factorPreferenceMatch, 0.10, func(in MatchInput) float64 {
				return preferenceMatchScore(in.Developer.Preferences, in.Project)
			}},
		},
	}
}

// TalentSearchProfile scores candidate developers for a project.
func TalentSearchProfile() ScoringProfile {
	return ScoringProfile{
		Name: "talent_search",
		Factors: []WeightedFactor{
			{factorSkillMatch, 0.35, func(in MatchInput) float64 {
				return skillMatchScore(in.Developer.Skills, in.Project.RequiredSkills)
			}},
			{factorExperienceMatch, 0.20, experienceMatchScore},
			{factorBudgetFit, 0.20, budgetFitScore},
			{factorReputation, 0.15, func(in MatchInput) float64 {
				return reputationScore(in.Developer)
			}},
			{factorAvailability, 0.10, func(in MatchInput) float64 {
				return availabilityScore(in.Developer.Availability)
			}},
		},
	}
}

// Score computes the composite content score and the per-factor
// breakdown. Factors and composite are rounded to four decimals.
func (p ScoringProfile) Score(in MatchInput) (float64, map[string]float64) {
	factors := make(map[string]float64, len(p.Factors))
	composite := 0.0
	for _, f := range p.Factors {
		v := round4(f.Score(in))
		factors[f.Name] = v
		composite += v * f.Weight
	}
	return round4(composite), factors
}

// skillMatchScore is the fraction of required skills the developer has.
// Projects with no skill requirements are neutral.
func skillMatchScore(devSkills, required []string) float64 {
	if len(required) == 0 {
		return neutralScore
	}
	have := make(map[string]struct{}, len(devSkills))
	for _, s := range devSkills {
		have[s] = struct{}{}
	}
	overlap := 0
	for _, s := range required {
		if _, ok := have[s]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(required))
}

// experienceMatchScore compares developer seniority against project
// complexity on a shared 1-4 ordinal scale. An exact match scores 1.0,
// one level of distance 0.7, anything further 0.4.
func experienceMatchScore(in MatchInput) float64 {
	diff := in.Developer.ExperienceLevel.ordinal() - in.Project.Complexity.ordinal()
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	default:
		return 0.4
	}
}

// budgetFitScore measures how well the developer's hourly rate sits in
// the project's budget. Fixed budgets are converted to an implied hourly
// rate over the estimated hours (40 when unspecified) and scored by rate
// ratio. Ranged budgets peak at the midpoint and taper toward the edges;
// rates below the range score a flat 0.8 and rates above decay with the
// overshoot, floored at 0.2. Missing budgets are neutral.
func budgetFitScore(in MatchInput) float64 {
	rate := in.Developer.HourlyRate
	b := in.Project.Budget
	if b.IsZero() {
		return neutralScore
	}

	if b.Fixed != nil {
		hours := b.EstimatedHours
		if hours <= 0 {
			hours = 40
		}
		implied := *b.Fixed / hours
		if implied <= 0 || rate <= 0 {
			return neutralScore
		}
		return math.Min(implied, rate) / math.Max(implied, rate)
	}

	if !b.HasUpperBound() {
		if rate >= b.Min {
			return 1.0
		}
		return 0.8
	}

	max := *b.Max
	switch {
	case rate < b.Min:
		return 0.8
	case rate > max:
		return math.Max(max/rate*0.6, 0.2)
	case max == b.Min:
		return 1.0
	default:
		position := (rate - b.Min) / (max - b.Min)
		return 1.0 - math.Abs(0.5-position)*0.4
	}
}

// recencyScore favors recently posted projects. Projects without a
// creation timestamp score as if they were old.
func recencyScore(createdAt *time.Time, now time.Time) float64 {
	if createdAt == nil {
		return 0.7
	}
	age := now.Sub(*createdAt)
	switch {
	case age < 7*24*time.Hour:
		return 1.0
	case age < 14*24*time.Hour:
		return 0.9
	case age < 30*24*time.Hour:
		return 0.8
	default:
		return 0.7
	}
}

// preferenceMatchScore is the fraction of the developer's specified
// preference dimensions the project satisfies. A dimension only counts
// when the developer stated a preference and the project carries the
// matching attribute. Hybrid and no-preference remote settings are always
// satisfied. With nothing specified the factor is neutral.
func preferenceMatchScore(prefs Preferences, project *ProjectListing) float64 {
	specified, satisfied := 0, 0

	if len(prefs.ProjectTypes) > 0 && project.ProjectType != "" {
		specified++
		if containsString(prefs.ProjectTypes, project.ProjectType) {
			satisfied++
		}
	}

	if prefs.RemotePreference != "" {
		specified++
		switch prefs.RemotePreference {
		case Hybrid, NoPreference:
			satisfied++
		case RemoteOnly:
			if project.IsRemote {
				satisfied++
			}
		case OnsiteOnly:
			if !project.IsRemote {
				satisfied++
			}
		}
	}

	if len(prefs.Industries) > 0 && project.Industry != "" {
		specified++
		if containsString(prefs.Industries, project.Industry) {
			satisfied++
		}
	}

	if specified == 0 {
		return neutralScore
	}
	return float64(satisfied) / float64(specified)
}

// reputationScore folds rating, completion rate, and review volume into
// one 0..1 figure. Rating dominates; review volume saturates at 20
// reviews so a large history stops adding weight.
func reputationScore(dev *DeveloperProfile) float64 {
	ratingComponent := (dev.AverageRating - 1) / 4
	volumeComponent := math.Min(float64(dev.TotalReviews)/20, 1.0)
	score := 0.6*ratingComponent + 0.3*dev.CompletionRate + 0.1*volumeComponent
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// availabilityScore maps availability status onto a fixed scale. Unknown
// or unreported statuses are neutral.
func availabilityScore(status AvailabilityStatus) float64 {
	switch status {
	case Available:
		return 1.0
	case PartiallyAvailable:
		return 0.7
	case Busy:
		return 0.3
	default:
		return neutralScore
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
