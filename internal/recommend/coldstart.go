// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import (
	"fmt"
	"math"
	"sort"
)

// coldStartVersion labels results produced by the popularity fallback so
// consumers can tell them apart from trained-model output.
const coldStartVersion = "cold_start_v1"

// popularityNormalizer is the application count at which a listing is
// considered maximally popular.
const popularityNormalizer = 50.0

// coldStartRecommendations ranks the curated popular set for a developer
// with no collaborative signal. Relevance is 70% normalized popularity
// and 30% skill match. Equal scores keep the curated order.
func coldStartRecommendations(popular []PopularListing, dev *DeveloperProfile, limit int) []Recommendation {
	recs := make([]Recommendation, 0, len(popular))
	for _, listing := range popular {
		skill := round4(skillMatchScore(dev.Skills, listing.RequiredSkills))
		popularity := math.Min(float64(listing.ApplicationCount)/popularityNormalizer, 1.0)
		relevance := round4(popularity*0.7 + skill*0.3)

		recs = append(recs, Recommendation{
			CandidateID:    listing.ID,
			RelevanceScore: relevance,
			ContentScore:   skill,
			Factors:        map[string]float64{factorSkillMatch: skill},
			Reasons: []string{
				"Popular project on the platform",
				fmt.Sprintf("Matches %d%% of your skills", int(skill*100)),
			},
			ModelVersion: coldStartVersion,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RelevanceScore > recs[j].RelevanceScore
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	for i := range recs {
		recs[i].RankPosition = i + 1
	}
	return recs
}
