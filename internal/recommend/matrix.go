// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import "sort"

// InteractionMatrix is a dense user-by-project weight matrix. Rows follow
// UserIDs and columns follow ItemIDs, both sorted ascending so that the
// same event set always produces the same matrix regardless of input
// order.
type InteractionMatrix struct {
	UserIDs []string
	ItemIDs []string
	Weights [][]float64

	userIdx map[string]int
	itemIdx map[string]int
}

// BuildInteractionMatrix aggregates events into a weight matrix. Repeated
// interactions accumulate additively. Events with an unrecognized type are
// skipped. The result is empty (zero users and items) when no usable
// events remain.
func BuildInteractionMatrix(events []InteractionEvent) *InteractionMatrix {
	type cell struct{ user, item string }
	weights := make(map[cell]float64)
	userSet := make(map[string]struct{})
	itemSet := make(map[string]struct{})

	for _, ev := range events {
		w, ok := ev.Type.Weight()
		if !ok || ev.UserID == "" || ev.ProjectID == "" {
			continue
		}
		weights[cell{ev.UserID, ev.ProjectID}] += w
		userSet[ev.UserID] = struct{}{}
		itemSet[ev.ProjectID] = struct{}{}
	}

	m := &InteractionMatrix{
		UserIDs: sortedKeys(userSet),
		ItemIDs: sortedKeys(itemSet),
	}
	m.userIdx = indexOf(m.UserIDs)
	m.itemIdx = indexOf(m.ItemIDs)

	m.Weights = make([][]float64, len(m.UserIDs))
	for i := range m.Weights {
		m.Weights[i] = make([]float64, len(m.ItemIDs))
	}
	for c, w := range weights {
		m.Weights[m.userIdx[c.user]][m.itemIdx[c.item]] = w
	}
	return m
}

// Empty reports whether the matrix has no users or no items.
func (m *InteractionMatrix) Empty() bool {
	return len(m.UserIDs) == 0 || len(m.ItemIDs) == 0
}

// NonzeroCount returns the number of cells with a nonzero weight.
func (m *InteractionMatrix) NonzeroCount() int {
	n := 0
	for _, row := range m.Weights {
		for _, w := range row {
			if w != 0 {
				n++
			}
		}
	}
	return n
}

// Sparsity returns the fraction of zero cells, 1 - nonzero/total.
// An empty matrix has sparsity 1.
func (m *InteractionMatrix) Sparsity() float64 {
	total := len(m.UserIDs) * len(m.ItemIDs)
	if total == 0 {
		return 1
	}
	return 1 - float64(m.NonzeroCount())/float64(total)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func indexOf(ids []string) map[string]int {
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	return idx
}
