package api

import (
	"context"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// mockItemService implements driving.ItemService.
type mockItemService struct {
	items   map[int64]*domain.Item
	nextID  int64
	lastErr error
}

func newMockItemService() *mockItemService {
	return &mockItemService{items: make(map[int64]*domain.Item), nextID: 1}
}

func (m *mockItemService) Create(_ context.Context, draft domain.ItemDraft) (*domain.Item, error) {
	if m.lastErr != nil {
		return nil, m.lastErr
	}
	item := &domain.Item{
		ID:       m.nextID,
		Source:   domain.SourceManual,
		Stimulus: draft.Stimulus,
		Stem:     draft.Stem,
		Choices:  draft.Choices,
		Answer:   draft.Answer,
		Metadata: draft.Metadata,
		Status:   domain.StatusNew,
	}
	m.items[item.ID] = item
	m.nextID++
	return item, nil
}

func (m *mockItemService) Get(_ context.Context, id int64) (*domain.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (m *mockItemService) List(_ context.Context, _ int) ([]domain.Item, error) {
	var out []domain.Item
	for id := m.nextID - 1; id >= 1; id-- {
		if item, ok := m.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

// mockReviewService implements driving.ReviewService.
type mockReviewService struct {
	items   *mockItemService
	receipt *domain.CommitReceipt
	err     error
}

func (m *mockReviewService) setStatus(ctx context.Context, id int64, status domain.ItemStatus) (*domain.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, err := m.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Status = status
	return item, nil
}

func (m *mockReviewService) Approve(ctx context.Context, id int64) (*domain.Item, error) {
	return m.setStatus(ctx, id, domain.StatusApproved)
}

func (m *mockReviewService) Reject(ctx context.Context, id int64) (*domain.Item, error) {
	return m.setStatus(ctx, id, domain.StatusRejected)
}

func (m *mockReviewService) Cart(_ context.Context) ([]domain.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Item
	for _, item := range m.items.items {
		if item.Status == domain.StatusApproved && !item.Committed {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockReviewService) Commit(_ context.Context) (*domain.CommitReceipt, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.receipt == nil {
		return nil, domain.ErrEmptyCart
	}
	return m.receipt, nil
}

// mockSimilarityService implements driving.SimilarityService.
type mockSimilarityService struct {
	result     *domain.SimilarResult
	err        error
	lastK      int
	recomputed []int64
}

func (m *mockSimilarityService) FindSimilar(_ context.Context, itemID int64, k int) (*domain.SimilarResult, error) {
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	result := *m.result
	result.QueryID = itemID
	result.TopK = k
	return &result, nil
}

func (m *mockSimilarityService) Recompute(_ context.Context, itemID int64) error {
	if m.err != nil {
		return m.err
	}
	m.recomputed = append(m.recomputed, itemID)
	return nil
}

// mockGenerationService implements driving.GenerationService.
type mockGenerationService struct {
	item       *domain.Item
	err        error
	lastPrompt string
}

func (m *mockGenerationService) FromPrompt(_ context.Context, prompt string) (*domain.Item, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return nil, m.err
	}
	return m.item, nil
}

func (m *mockGenerationService) FromDocument(_ context.Context, _ string) (*domain.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.item, nil
}
