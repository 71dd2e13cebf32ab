package services

import (
	"math"
	"sort"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// Cosine computes the cosine similarity between u and v, in [-1, 1].
//
// If either vector has zero norm the result is 0.0: no similarity
// signal, never a division by zero or NaN. Vectors of different lengths
// (e.g. rows written by a different model version) are rejected with
// domain.ErrDimensionMismatch so callers can skip that candidate.
func Cosine(u, v []float32) (float64, error) {
	if len(u) != len(v) {
		return 0, domain.ErrDimensionMismatch
	}

	var dot, normU, normV float64
	for i := range u {
		dot += float64(u[i]) * float64(v[i])
		normU += float64(u[i]) * float64(u[i])
		normV += float64(v[i]) * float64(v[i])
	}

	if normU == 0 || normV == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normU) * math.Sqrt(normV)), nil
}

// TopK returns up to k entries sorted by score descending. The sort is
// stable, so ties keep the relative order of the input. If the input has
// fewer than k entries, all of them are returned. k <= 0 yields nil.
//
// This is a full linear ranking over the candidate pool; at the target
// scale an index structure is not worth its complexity.
func TopK(scored []domain.SimilarItem, k int) []domain.SimilarItem {
	if k <= 0 {
		return nil
	}

	ranked := make([]domain.SimilarItem, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
