package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// setupTestServices swaps the package-level services for in-memory mocks
// so commands run without touching disk or network. The returned cleanup
// restores the previous services.
func setupTestServices() func() {
	oldConfig := configStore
	oldItem := itemService
	oldReview := reviewService
	oldSimilarity := similarityService
	oldGeneration := generationService

	configStore = mockConfig{}
	items := &mockItemService{items: map[int64]domain.Item{}}
	items.seed()
	itemService = items
	reviewService = &mockReviewService{items: items}
	similarityService = &mockSimilarityService{}
	generationService = &mockGenerationService{items: items}

	return func() {
		configStore = oldConfig
		itemService = oldItem
		reviewService = oldReview
		similarityService = oldSimilarity
		generationService = oldGeneration
	}
}

// mockConfig is an empty, read-only config.
type mockConfig map[string]any

func (c mockConfig) Get(key string) (any, bool) { v, ok := c[key]; return v, ok }

func (c mockConfig) GetString(key string) string {
	s, _ := c[key].(string)
	return s
}

func (c mockConfig) GetInt(key string) int {
	n, _ := c[key].(int)
	return n
}

func (c mockConfig) GetBool(key string) bool {
	b, _ := c[key].(bool)
	return b
}

func (c mockConfig) Set(key string, value any) error {
	c[key] = value
	return nil
}

func (c mockConfig) Save() error { return nil }

func (c mockConfig) Load() error { return nil }

func (c mockConfig) Path() string { return "" }

type mockItemService struct {
	items  map[int64]domain.Item
	nextID int64
}

func (m *mockItemService) seed() {
	m.items = map[int64]domain.Item{}
	m.nextID = 1
	for _, draft := range []domain.ItemDraft{
		{Stimulus: "Photosynthesis converts light into chemical energy.", Stem: "What do plants produce?", Choices: []string{"Oxygen", "Methane"}, Answer: "A"},
		{Stimulus: "Water boils at 100 degrees Celsius at sea level.", Stem: "At what temperature does water boil?", Choices: []string{"90", "100"}, Answer: "B"},
	} {
		m.add(draft)
	}
}

func (m *mockItemService) add(draft domain.ItemDraft) *domain.Item {
	item := domain.Item{
		ID:        m.nextID,
		Source:    domain.SourceManual,
		Stimulus:  draft.Stimulus,
		Stem:      draft.Stem,
		Choices:   draft.Choices,
		Answer:    draft.Answer,
		Metadata:  draft.Metadata,
		Status:    domain.StatusNew,
		CreatedAt: time.Now().UTC(),
	}
	m.items[item.ID] = item
	m.nextID++
	return &item
}

func (m *mockItemService) Create(_ context.Context, draft domain.ItemDraft) (*domain.Item, error) {
	if draft.Stem == "" {
		return nil, fmt.Errorf("%w: stem is required", domain.ErrInvalidInput)
	}
	return m.add(draft), nil
}

func (m *mockItemService) Get(_ context.Context, id int64) (*domain.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: item %d", domain.ErrNotFound, id)
	}
	return &item, nil
}

func (m *mockItemService) List(_ context.Context, limit int) ([]domain.Item, error) {
	out := make([]domain.Item, 0, len(m.items))
	for id := m.nextID - 1; id >= 1 && len(out) < limit; id-- {
		if item, ok := m.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type mockReviewService struct {
	items *mockItemService
}

func (m *mockReviewService) Approve(ctx context.Context, id int64) (*domain.Item, error) {
	return m.setStatus(ctx, id, domain.StatusApproved)
}

func (m *mockReviewService) Reject(ctx context.Context, id int64) (*domain.Item, error) {
	return m.setStatus(ctx, id, domain.StatusRejected)
}

func (m *mockReviewService) setStatus(_ context.Context, id int64, status domain.ItemStatus) (*domain.Item, error) {
	item, ok := m.items.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: item %d", domain.ErrNotFound, id)
	}
	item.Status = status
	m.items.items[id] = item
	return &item, nil
}

func (m *mockReviewService) Cart(_ context.Context) ([]domain.Item, error) {
	var out []domain.Item
	for id := int64(1); id < m.items.nextID; id++ {
		item, ok := m.items.items[id]
		if ok && item.Status == domain.StatusApproved && !item.Committed {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockReviewService) Commit(ctx context.Context) (*domain.CommitReceipt, error) {
	cart, _ := m.Cart(ctx)
	if len(cart) == 0 {
		return nil, domain.ErrEmptyCart
	}
	for _, item := range cart {
		item.Committed = true
		item.CommitBatch = "batch-test"
		m.items.items[item.ID] = item
	}
	return &domain.CommitReceipt{BatchID: "batch-test", Count: len(cart)}, nil
}

type mockSimilarityService struct {
	lastK       int
	recomputed  []int64
	failSimilar error
}

func (m *mockSimilarityService) FindSimilar(_ context.Context, itemID int64, k int) (*domain.SimilarResult, error) {
	if m.failSimilar != nil {
		return nil, m.failSimilar
	}
	m.lastK = k
	return &domain.SimilarResult{
		QueryID: itemID,
		TopK:    k,
		Results: []domain.SimilarItem{{ID: itemID + 1, Score: 0.912}},
	}, nil
}

func (m *mockSimilarityService) Recompute(_ context.Context, itemID int64) error {
	m.recomputed = append(m.recomputed, itemID)
	return nil
}

type mockGenerationService struct {
	items      *mockItemService
	lastPrompt string
	lastPath   string
}

func (m *mockGenerationService) FromPrompt(_ context.Context, prompt string) (*domain.Item, error) {
	m.lastPrompt = prompt
	item := m.items.add(domain.ItemDraft{
		Stimulus: "Generated stimulus",
		Stem:     "Generated stem?",
		Choices:  []string{"Yes", "No"},
		Answer:   "A",
	})
	item.Source = domain.SourceAI
	item.Prompt = prompt
	m.items.items[item.ID] = *item
	return item, nil
}

func (m *mockGenerationService) FromDocument(_ context.Context, path string) (*domain.Item, error) {
	m.lastPath = path
	return m.FromPrompt(context.Background(), "[docx]"+path)
}
