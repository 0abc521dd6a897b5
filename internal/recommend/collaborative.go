// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

// neutralScore is used wherever the collaborative signal has nothing to
// say: unknown users, unseen items, or an untrained model.
const neutralScore = 0.5

// collaborativeNormalizer maps the similarity-weighted interaction average
// (raw weights run 1..5 and accumulate) into the 0..1 score range.
const collaborativeNormalizer = 10.0

// collaborativeScores predicts a 0..1 affinity for each candidate item
// from the neighborhood of the given user. Every candidate gets the
// neutral score when no snapshot exists or the user is not in it.
//
// For a known user, each candidate's raw score is the similarity-weighted
// average of neighbor interaction weights, taken over the neighbors that
// actually interacted with the item. The average is then divided by the
// normalizer and clamped to 1.0. Items with no neighbor signal stay
// neutral.
func collaborativeScores(snap *ModelSnapshot, userID string, itemIDs []string, k int) map[string]float64 {
	scores := make(map[string]float64, len(itemIDs))
	if snap == nil {
		for _, id := range itemIDs {
			scores[id] = neutralScore
		}
		return scores
	}
	userRow, ok := snap.UserIndex(userID)
	if !ok {
		for _, id := range itemIDs {
			scores[id] = neutralScore
		}
		return scores
	}

	neighbors := topNeighbors(snap.Similarity, userRow, k)
	for _, id := range itemIDs {
		col, ok := snap.ItemIndex(id)
		if !ok {
			scores[id] = neutralScore
			continue
		}
		var weighted, simSum float64
		for _, n := range neighbors {
			w := snap.Matrix[n.Index][col]
			if w > 0 {
				weighted += n.Similarity * w
				simSum += n.Similarity
			}
		}
		if simSum == 0 {
			scores[id] = neutralScore
			continue
		}
		score := weighted / simSum / collaborativeNormalizer
		if score > 1.0 {
			score = 1.0
		}
		scores[id] = score
	}
	return scores
}
