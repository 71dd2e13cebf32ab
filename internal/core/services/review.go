package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driving"
	"github.com/veritas-labs/itemforge-cli/internal/logger"
)

// Ensure ReviewService implements the interface.
var _ driving.ReviewService = (*ReviewService)(nil)

// ReviewService drives the approve/reject/commit workflow.
type ReviewService struct {
	store driven.ItemStore
}

// NewReviewService creates a review service.
func NewReviewService(store driven.ItemStore) *ReviewService {
	return &ReviewService{store: store}
}

// Approve marks an item as approved.
func (s *ReviewService) Approve(ctx context.Context, id int64) (*domain.Item, error) {
	return s.setStatus(ctx, id, domain.StatusApproved)
}

// Reject marks an item as rejected.
func (s *ReviewService) Reject(ctx context.Context, id int64) (*domain.Item, error) {
	return s.setStatus(ctx, id, domain.StatusRejected)
}

// Cart returns approved items awaiting commit.
func (s *ReviewService) Cart(ctx context.Context) ([]domain.Item, error) {
	return s.store.ListCart(ctx)
}

// Commit commits every approved, uncommitted item under a fresh batch
// ID. Returns domain.ErrEmptyCart when the cart is empty.
func (s *ReviewService) Commit(ctx context.Context) (*domain.CommitReceipt, error) {
	batchID := uuid.New().String()

	count, err := s.store.CommitCart(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("committing cart: %w", err)
	}
	if count == 0 {
		return nil, domain.ErrEmptyCart
	}

	logger.Info("Committed %d items (batch %s)", count, batchID)
	return &domain.CommitReceipt{BatchID: batchID, Count: count}, nil
}

func (s *ReviewService) setStatus(ctx context.Context, id int64, status domain.ItemStatus) (*domain.Item, error) {
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}
