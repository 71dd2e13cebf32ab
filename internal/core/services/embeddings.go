package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
	"github.com/veritas-labs/itemforge-cli/internal/logger"
)

// EmbeddingCache layers the get-or-compute policy over the embedding
// store and the encoder.
//
// Cache policy is deliberately at-most-once-compute: once a record
// exists for an item it is returned verbatim forever, even if the
// item's text has changed since. Staleness after edits is an accepted
// limitation; Recompute is the explicit escape hatch.
type EmbeddingCache struct {
	store   driven.EmbeddingStore
	encoder *Encoder
}

// NewEmbeddingCache creates an embedding cache over store and encoder.
func NewEmbeddingCache(store driven.EmbeddingStore, encoder *Encoder) *EmbeddingCache {
	return &EmbeddingCache{
		store:   store,
		encoder: encoder,
	}
}

// GetOrCompute returns the embedding for itemID, computing and
// persisting it on first request.
//
// A stored record wins unconditionally. On a miss, empty or
// whitespace-only text is stored as the zero vector without invoking
// the encoder; anything else is encoded and upserted. Concurrent
// callers for the same item may redundantly recompute, but the upsert
// keyed on item_id resolves the race last-writer-wins.
func (c *EmbeddingCache) GetOrCompute(ctx context.Context, itemID int64, text string) ([]float32, error) {
	rec, err := c.store.Get(ctx, itemID)
	if err == nil {
		logger.Debug("Embedding cache hit for item %d", itemID)
		return rec.Vector, nil
	}
	if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrCorruptRecord) {
		return nil, fmt.Errorf("reading embedding for item %d: %w", itemID, err)
	}
	if errors.Is(err, domain.ErrCorruptRecord) {
		logger.Warn("Replacing corrupt embedding record for item %d", itemID)
	}

	return c.compute(ctx, itemID, text)
}

// Recompute unconditionally re-encodes text and replaces the stored
// record for itemID.
func (c *EmbeddingCache) Recompute(ctx context.Context, itemID int64, text string) ([]float32, error) {
	return c.compute(ctx, itemID, text)
}

// LoadPoolExcept returns the candidate pool for a query on itemID.
func (c *EmbeddingCache) LoadPoolExcept(ctx context.Context, itemID int64) ([]domain.PoolEntry, error) {
	return c.store.LoadPoolExcept(ctx, itemID)
}

func (c *EmbeddingCache) compute(ctx context.Context, itemID int64, text string) ([]float32, error) {
	vec, err := c.encoder.Encode(ctx, text)
	if err != nil {
		return nil, err
	}

	rec := &domain.EmbeddingRecord{
		ItemID:    itemID,
		Model:     c.encoder.ModelName(),
		Vector:    vec,
		UpdatedAt: time.Now().UTC(),
	}
	if err := c.store.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persisting embedding for item %d: %w", itemID, err)
	}

	logger.Debug("Computed embedding for item %d (model=%s)", itemID, rec.Model)
	return vec, nil
}
