package driving

import (
	"context"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// SimilarityService finds items with semantically similar stimuli.
type SimilarityService interface {
	// FindSimilar returns up to k items ranked by cosine similarity
	// against the given item's stimulus. k must be positive.
	// Returns domain.ErrNotFound when the item does not exist.
	FindSimilar(ctx context.Context, itemID int64, k int) (*domain.SimilarResult, error)

	// Recompute re-encodes the item's stimulus and replaces its cached
	// embedding, bypassing the cache-wins policy.
	Recompute(ctx context.Context, itemID int64) error
}
