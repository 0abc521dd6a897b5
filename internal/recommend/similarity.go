// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import (
	"math"
	"sort"
)

// Neighbor is one entry of a user's similarity neighborhood.
type Neighbor struct {
	Index      int
	Similarity float64
}

// CosineSimilarityMatrix computes the full user-user cosine similarity
// matrix over the interaction rows. The diagonal is fixed at 1.0 and any
// pair involving an all-zero row scores 0. The computation is O(U^2 * I),
// which is acceptable at the catalog sizes this service targets.
func CosineSimilarityMatrix(m *InteractionMatrix) [][]float64 {
	n := len(m.UserIDs)
	sim := make([][]float64, n)
	norms := make([]float64, n)
	for i, row := range m.Weights {
		norms[i] = vectorNorm(row)
	}
	for i := 0; i < n; i++ {
		sim[i] = make([]float64, n)
		sim[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := 0.0
			if norms[i] > 0 && norms[j] > 0 {
				s = dot(m.Weights[i], m.Weights[j]) / (norms[i] * norms[j])
			}
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}

// topNeighbors returns the k most similar users to the given row, self
// excluded, ordered by descending similarity. Equal similarities order by
// ascending user index; with sorted user ids that makes the neighborhood
// fully deterministic.
func topNeighbors(sim [][]float64, user, k int) []Neighbor {
	if user < 0 || user >= len(sim) || k <= 0 {
		return nil
	}
	neighbors := make([]Neighbor, 0, len(sim)-1)
	for i, s := range sim[user] {
		if i == user {
			continue
		}
		neighbors = append(neighbors, Neighbor{Index: i, Similarity: s})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// columnCosine computes cosine similarity between two item columns of the
// matrix. Used by the similar-projects lookup, which derives item-item
// similarity on demand instead of storing a second matrix.
func columnCosine(weights [][]float64, a, b int) float64 {
	var dotAB, normA, normB float64
	for _, row := range weights {
		dotAB += row[a] * row[b]
		normA += row[a] * row[a]
		normB += row[b] * row[b]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dotAB / (math.Sqrt(normA) * math.Sqrt(normB))
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func vectorNorm(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
