// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import "sort"

// EvaluationMetrics reports offline ranking quality of a freshly trained
// snapshot against the events it was trained on. Informational only; a
// weak score never blocks publication.
type EvaluationMetrics struct {
	PrecisionAtK map[int]float64 `json:"precision_at_k"`
	RecallAtK    map[int]float64 `json:"recall_at_k"`
	// EvaluatedUsers is how many users had at least one apply or hire
	// and therefore contributed to the averages.
	EvaluatedUsers int `json:"evaluated_users"`
}

// BusinessMetrics reports funnel conversion rates over a training set.
type BusinessMetrics struct {
	ViewToApplyRate       float64 `json:"view_to_apply_rate"`
	ApplyToHireRate       float64 `json:"apply_to_hire_rate"`
	OverallConversionRate float64 `json:"overall_conversion_rate"`
}

// evaluateSnapshot measures precision and recall at each cutoff. For every
// user, items the user applied to or hired for count as relevant; the
// item catalog is ranked by collaborative score and compared against that
// relevant set. Users with no relevant items are skipped.
func evaluateSnapshot(snap *ModelSnapshot, events []InteractionEvent, neighborhood int, cutoffs []int) EvaluationMetrics {
	relevant := make(map[string]map[string]struct{})
	for _, ev := range events {
		if ev.Type != InteractionApply && ev.Type != InteractionHire {
			continue
		}
		if relevant[ev.UserID] == nil {
			relevant[ev.UserID] = make(map[string]struct{})
		}
		relevant[ev.UserID][ev.ProjectID] = struct{}{}
	}

	metrics := EvaluationMetrics{
		PrecisionAtK: make(map[int]float64, len(cutoffs)),
		RecallAtK:    make(map[int]float64, len(cutoffs)),
	}

	for _, userID := range snap.UserIDs {
		relevantItems := relevant[userID]
		if len(relevantItems) == 0 {
			continue
		}
		metrics.EvaluatedUsers++

		scores := collaborativeScores(snap, userID, snap.ItemIDs, neighborhood)
		ranked := make([]string, len(snap.ItemIDs))
		copy(ranked, snap.ItemIDs)
		sort.SliceStable(ranked, func(i, j int) bool {
			return scores[ranked[i]] > scores[ranked[j]]
		})

		for _, k := range cutoffs {
			top := ranked
			if len(top) > k {
				top = top[:k]
			}
			hits := 0
			for _, id := range top {
				if _, ok := relevantItems[id]; ok {
					hits++
				}
			}
			metrics.PrecisionAtK[k] += float64(hits) / float64(k)
			metrics.RecallAtK[k] += float64(hits) / float64(len(relevantItems))
		}
	}

	if metrics.EvaluatedUsers > 0 {
		for _, k := range cutoffs {
			metrics.PrecisionAtK[k] = round4(metrics.PrecisionAtK[k] / float64(metrics.EvaluatedUsers))
			metrics.RecallAtK[k] = round4(metrics.RecallAtK[k] / float64(metrics.EvaluatedUsers))
		}
	}
	return metrics
}

// businessMetrics computes funnel conversion rates from raw events.
func businessMetrics(events []InteractionEvent) BusinessMetrics {
	var views, applies, hires float64
	for _, ev := range events {
		switch ev.Type {
		case InteractionView:
			views++
		case InteractionApply:
			applies++
		case InteractionHire:
			hires++
		}
	}
	var m BusinessMetrics
	if views > 0 {
		m.ViewToApplyRate = round4(applies / views)
		m.OverallConversionRate = round4(hires / views)
	}
	if applies > 0 {
		m.ApplyToHireRate = round4(hires / applies)
	}
	return m
}
