package mcp

import (
	"context"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// mockItemService is a mock implementation of driving.ItemService.
type mockItemService struct {
	item  *domain.Item
	items []domain.Item
	err   error
}

func (m *mockItemService) Create(_ context.Context, _ domain.ItemDraft) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockItemService) Get(_ context.Context, _ int64) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockItemService) List(_ context.Context, _ int) ([]domain.Item, error) {
	return m.items, m.err
}

// mockSimilarityService is a mock implementation of driving.SimilarityService.
type mockSimilarityService struct {
	result *domain.SimilarResult
	err    error
	lastK  int
}

func (m *mockSimilarityService) FindSimilar(_ context.Context, itemID int64, k int) (*domain.SimilarResult, error) {
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	result := *m.result
	result.QueryID = itemID
	return &result, nil
}

func (m *mockSimilarityService) Recompute(_ context.Context, _ int64) error {
	return m.err
}

// mockReviewService is a mock implementation of driving.ReviewService.
type mockReviewService struct {
	item    *domain.Item
	items   []domain.Item
	receipt *domain.CommitReceipt
	err     error
}

func (m *mockReviewService) Approve(_ context.Context, _ int64) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockReviewService) Reject(_ context.Context, _ int64) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockReviewService) Cart(_ context.Context) ([]domain.Item, error) {
	return m.items, m.err
}

func (m *mockReviewService) Commit(_ context.Context) (*domain.CommitReceipt, error) {
	return m.receipt, m.err
}

// mockGenerationService is a mock implementation of driving.GenerationService.
type mockGenerationService struct {
	item *domain.Item
	err  error
}

func (m *mockGenerationService) FromPrompt(_ context.Context, _ string) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockGenerationService) FromDocument(_ context.Context, _ string) (*domain.Item, error) {
	return m.item, m.err
}
