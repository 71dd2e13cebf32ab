package driven

import (
	"context"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// EmbeddingStore persists one embedding record per item.
//
// Note: This is separate from EmbeddingService, which generates vectors.
// EmbeddingStore caches them; the get-or-compute policy lives in the
// services layer on top of these primitives.
type EmbeddingStore interface {
	// Get retrieves the stored embedding for an item.
	// Returns domain.ErrNotFound if no record exists, or
	// domain.ErrCorruptRecord if the stored payload fails to decode.
	Get(ctx context.Context, itemID int64) (*domain.EmbeddingRecord, error)

	// Upsert inserts or replaces the record keyed by ItemID in a single
	// atomic statement. Concurrent writers resolve last-writer-wins.
	Upsert(ctx context.Context, rec *domain.EmbeddingRecord) error

	// LoadPoolExcept returns every stored embedding except the given
	// item's. Records whose payload fails to decode are skipped, never
	// surfaced as an error. No ordering is guaranteed.
	LoadPoolExcept(ctx context.Context, itemID int64) ([]domain.PoolEntry, error)
}
