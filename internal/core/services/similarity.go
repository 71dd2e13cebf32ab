package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driving"
	"github.com/veritas-labs/itemforge-cli/internal/logger"
)

// Ensure SimilarityService implements the interface.
var _ driving.SimilarityService = (*SimilarityService)(nil)

// scoreDecimals is the display precision for reported scores.
const scoreDecimals = 3

// SimilarityService orchestrates "find similar items" queries.
type SimilarityService struct {
	items driven.ItemStore
	cache *EmbeddingCache
}

// NewSimilarityService creates a similarity service.
func NewSimilarityService(items driven.ItemStore, cache *EmbeddingCache) *SimilarityService {
	return &SimilarityService{
		items: items,
		cache: cache,
	}
}

// FindSimilar returns up to k items ranked by cosine similarity of their
// stimulus embeddings against the given item's.
//
// The query item's vector is obtained through the cache (computing and
// persisting it on first request); pool items are read-only. Candidates
// with a mismatched dimensionality are skipped, not scored. Scores are
// rounded to three decimals strictly after ranking, so rounding can
// never reorder results.
func (s *SimilarityService) FindSimilar(ctx context.Context, itemID int64, k int) (*domain.SimilarResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidInput, k)
	}

	logger.Section("Similarity Query")
	logger.Debug("Query item: %d, k: %d", itemID, k)

	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	queryVec, err := s.cache.GetOrCompute(ctx, itemID, item.QueryText())
	if err != nil {
		return nil, err
	}

	pool, err := s.cache.LoadPoolExcept(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("loading candidate pool: %w", err)
	}
	logger.Debug("Candidate pool size: %d", len(pool))

	scored := make([]domain.SimilarItem, 0, len(pool))
	for _, entry := range pool {
		score, err := Cosine(queryVec, entry.Vector)
		if err != nil {
			if errors.Is(err, domain.ErrDimensionMismatch) {
				logger.Warn("Skipping item %d: %v (len=%d, query len=%d)",
					entry.ItemID, err, len(entry.Vector), len(queryVec))
				continue
			}
			return nil, fmt.Errorf("scoring item %d: %w", entry.ItemID, err)
		}
		scored = append(scored, domain.SimilarItem{ID: entry.ItemID, Score: score})
	}

	top := TopK(scored, k)
	for i := range top {
		top[i].Score = roundScore(top[i].Score)
	}

	logger.Info("Similarity query for item %d returned %d results", itemID, len(top))
	return &domain.SimilarResult{
		QueryID: itemID,
		TopK:    k,
		Results: top,
	}, nil
}

// Recompute re-encodes the item's current stimulus and replaces its
// cached embedding. This is the explicit alternative to the default
// never-recompute cache policy.
func (s *SimilarityService) Recompute(ctx context.Context, itemID int64) error {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return err
	}

	if _, err := s.cache.Recompute(ctx, itemID, item.QueryText()); err != nil {
		return err
	}
	logger.Info("Recomputed embedding for item %d", itemID)
	return nil
}

// roundScore rounds to the fixed display precision. Applied only after
// ranking.
func roundScore(score float64) float64 {
	shift := math.Pow(10, scoreDecimals)
	return math.Round(score*shift) / shift
}
