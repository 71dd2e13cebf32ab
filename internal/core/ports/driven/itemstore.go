package driven

import (
	"context"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// ItemStore persists exam items.
type ItemStore interface {
	// Save stores a new item and assigns its ID.
	Save(ctx context.Context, item *domain.Item) error

	// Get retrieves an item by ID.
	// Returns domain.ErrNotFound if the item does not exist.
	Get(ctx context.Context, id int64) (*domain.Item, error)

	// List returns the most recent items, newest first, up to limit.
	List(ctx context.Context, limit int) ([]domain.Item, error)

	// UpdateStatus sets the review status of an item.
	// Returns domain.ErrNotFound if the item does not exist.
	UpdateStatus(ctx context.Context, id int64, status domain.ItemStatus) error

	// ListCart returns approved items that have not been committed.
	ListCart(ctx context.Context) ([]domain.Item, error)

	// CommitCart marks all approved, uncommitted items as committed
	// under the given batch ID and returns how many were committed.
	CommitCart(ctx context.Context, batchID string) (int, error)
}
