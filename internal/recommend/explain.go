// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import "fmt"

// Direction identifies which side of the marketplace a request ranks.
type Direction int

const (
	// ProjectSearch ranks candidate projects for a developer.
	ProjectSearch Direction = iota
	// TalentSearch ranks candidate developers for a project.
	TalentSearch
)

// explain builds the human-readable reasons for one ranked candidate.
// Rules run in a fixed order so the list is deterministic for a given
// score breakdown. Factors absent from the breakdown simply never fire,
// which is how talent search skips the recency rule. The result always
// has at least one entry.
func explain(direction Direction, factors map[string]float64, collabScore float64) []string {
	var reasons []string

	if skill := factors[factorSkillMatch]; skill > 0.7 {
		reasons = append(reasons, fmt.Sprintf("Strong skill match (%d%%)", int(skill*100)))
	} else if skill > 0.5 {
		reasons = append(reasons, fmt.Sprintf("Good skill match (%d%%)", int(skill*100)))
	}

	if factors[factorBudgetFit] > 0.8 {
		if direction == ProjectSearch {
			reasons = append(reasons, "Budget aligns with your rate")
		} else {
			reasons = append(reasons, "Rate within your budget")
		}
	}

	if factors[factorExperienceMatch] >= 0.7 {
		if direction == ProjectSearch {
			reasons = append(reasons, "Project complexity matches your experience")
		} else {
			reasons = append(reasons, "Experience level matches project complexity")
		}
	}

	if direction == ProjectSearch && collabScore > 0.7 {
		reasons = append(reasons, "Developers with similar profiles have applied")
	}

	if factors[factorRecency] >= 1.0 {
		reasons = append(reasons, "Recently posted project")
	}

	if len(reasons) == 0 {
		if direction == ProjectSearch {
			reasons = append(reasons, "Matches your general profile")
		} else {
			reasons = append(reasons, "Matches project requirements")
		}
	}
	return reasons
}
