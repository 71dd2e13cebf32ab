package driving

import (
	"context"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// ReviewService drives the approve/reject/commit workflow.
type ReviewService interface {
	// Approve marks an item as approved.
	Approve(ctx context.Context, id int64) (*domain.Item, error)

	// Reject marks an item as rejected.
	Reject(ctx context.Context, id int64) (*domain.Item, error)

	// Cart returns approved items awaiting commit.
	Cart(ctx context.Context) ([]domain.Item, error)

	// Commit commits every item in the cart under a fresh batch ID.
	// Returns domain.ErrEmptyCart when there is nothing to commit.
	Commit(ctx context.Context) (*domain.CommitReceipt, error)
}
