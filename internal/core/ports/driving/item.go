package driving

import (
	"context"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// ItemService manages the exam item bank for external actors.
type ItemService interface {
	// Create stores a manually authored item.
	Create(ctx context.Context, draft domain.ItemDraft) (*domain.Item, error)

	// Get retrieves an item by ID.
	Get(ctx context.Context, id int64) (*domain.Item, error)

	// List returns the most recent items, newest first.
	List(ctx context.Context, limit int) ([]domain.Item, error)
}
