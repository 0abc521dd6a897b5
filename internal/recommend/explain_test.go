// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import (
	"reflect"
	"testing"
)

func TestExplainProjectSearch(t *testing.T) {
	tests := []struct {
		name    string
		factors map[string]float64
		collab  float64
		want    []string
	}{
		{
			name:    "strong skill match",
			factors: map[string]float64{factorSkillMatch: 0.8},
			want:    []string{"Strong skill match (80%)"},
		},
		{
			name:    "good skill match with truncated percent",
			factors: map[string]float64{factorSkillMatch: 0.6667},
			want:    []string{"Good skill match (66%)"},
		},
		{
			name:    "skill at boundary does not fire",
			factors: map[string]float64{factorSkillMatch: 0.5},
			want:    []string{"Matches your general profile"},
		},
		{
			name: "rules emit in fixed order",
			factors: map[string]float64{
				factorSkillMatch:      0.9,
				factorBudgetFit:       0.9,
				factorExperienceMatch: 1.0,
				factorRecency:         1.0,
			},
			collab: 0.8,
			want: []string{
				"Strong skill match (90%)",
				"Budget aligns with your rate",
				"Project complexity matches your experience",
				"Developers with similar profiles have applied",
				"Recently posted project",
			},
		},
		{
			name:    "collaborative alone",
			factors: map[string]float64{},
			collab:  0.75,
			want:    []string{"Developers with similar profiles have applied"},
		},
		{
			name:    "fallback when nothing fires",
			factors: map[string]float64{factorSkillMatch: 0.2, factorBudgetFit: 0.5},
			collab:  0.5,
			want:    []string{"Matches your general profile"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := explain(ProjectSearch, tt.factors, tt.collab)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("explain() = %v, want %v", got, tt.want)
			}
			if len(got) == 0 {
				t.Errorf("explain() returned empty list")
			}
		})
	}
}

func TestExplainTalentSearch(t *testing.T) {
	tests := []struct {
		name    string
		factors map[string]float64
		want    []string
	}{
		{
			name: "direction-specific strings",
			factors: map[string]float64{
				factorSkillMatch:      0.85,
				factorBudgetFit:       0.9,
				factorExperienceMatch: 0.7,
			},
			want: []string{
				"Strong skill match (85%)",
				"Rate within your budget",
				"Experience level matches project complexity",
			},
		},
		{
			name:    "fallback",
			factors: map[string]float64{factorSkillMatch: 0.3},
			want:    []string{"Matches project requirements"},
		},
		{
			name: "collaborative rule never fires for talent",
			// collab passed as 0 below; even a high breakdown cannot
			// produce the similar-profiles reason in this direction
			factors: map[string]float64{factorSkillMatch: 0.9},
			want:    []string{"Strong skill match (90%)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := explain(TalentSearch, tt.factors, 0)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("explain() = %v, want %v", got, tt.want)
			}
		})
	}
}
