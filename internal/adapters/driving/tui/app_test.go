package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// mockItemService implements driving.ItemService.
type mockItemService struct {
	items []domain.Item
	err   error
}

func (m *mockItemService) Create(_ context.Context, _ domain.ItemDraft) (*domain.Item, error) {
	return nil, m.err
}

func (m *mockItemService) Get(_ context.Context, _ int64) (*domain.Item, error) {
	return nil, m.err
}

func (m *mockItemService) List(_ context.Context, _ int) ([]domain.Item, error) {
	return m.items, m.err
}

// mockReviewService implements driving.ReviewService.
type mockReviewService struct {
	item     *domain.Item
	receipt  *domain.CommitReceipt
	err      error
	approves int
	rejects  int
}

func (m *mockReviewService) Approve(_ context.Context, _ int64) (*domain.Item, error) {
	m.approves++
	return m.item, m.err
}

func (m *mockReviewService) Reject(_ context.Context, _ int64) (*domain.Item, error) {
	m.rejects++
	return m.item, m.err
}

func (m *mockReviewService) Cart(_ context.Context) ([]domain.Item, error) {
	return nil, m.err
}

func (m *mockReviewService) Commit(_ context.Context) (*domain.CommitReceipt, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.receipt, nil
}

// mockSimilarityService implements driving.SimilarityService.
type mockSimilarityService struct {
	result *domain.SimilarResult
	err    error
}

func (m *mockSimilarityService) FindSimilar(_ context.Context, itemID int64, k int) (*domain.SimilarResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := *m.result
	result.QueryID = itemID
	result.TopK = k
	return &result, nil
}

func (m *mockSimilarityService) Recompute(_ context.Context, _ int64) error {
	return m.err
}

func bankItems() []domain.Item {
	return []domain.Item{
		{ID: 1, Stem: "What do mitochondria produce?", Status: domain.StatusNew},
		{ID: 2, Stem: "Which organelle stores water?", Status: domain.StatusNew},
	}
}

// setupApp builds an app with items already loaded.
func setupApp(t *testing.T, review *mockReviewService, similarity *mockSimilarityService) *App {
	t.Helper()

	ports := &Ports{
		Item:   &mockItemService{items: bankItems()},
		Review: review,
	}
	if similarity != nil {
		ports.Similarity = similarity
	}

	app, err := NewApp(context.Background(), ports)
	require.NoError(t, err)

	model, _ := app.Update(itemsLoadedMsg{items: bankItems()})
	return model.(*App)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_ValidatesPorts(t *testing.T) {
	_, err := NewApp(context.Background(), &Ports{})
	assert.ErrorIs(t, err, ErrMissingItemService)

	_, err = NewApp(context.Background(), &Ports{Item: &mockItemService{}})
	assert.ErrorIs(t, err, ErrMissingReviewService)
}

func TestApp_LoadsItems(t *testing.T) {
	app := setupApp(t, &mockReviewService{}, nil)

	assert.False(t, app.loading)
	assert.Len(t, app.items, 2)
	assert.Contains(t, app.View(), "mitochondria")
}

func TestApp_LoadError(t *testing.T) {
	app := setupApp(t, &mockReviewService{}, nil)

	model, _ := app.Update(itemsLoadedMsg{err: assert.AnError})
	app = model.(*App)

	assert.Contains(t, app.View(), assert.AnError.Error())
}

func TestApp_Navigation(t *testing.T) {
	app := setupApp(t, &mockReviewService{}, nil)
	assert.Equal(t, 0, app.cursor)

	model, _ := app.Update(keyMsg("j"))
	app = model.(*App)
	assert.Equal(t, 1, app.cursor)

	// Bottom of the list clamps
	model, _ = app.Update(keyMsg("j"))
	app = model.(*App)
	assert.Equal(t, 1, app.cursor)

	model, _ = app.Update(keyMsg("k"))
	app = model.(*App)
	assert.Equal(t, 0, app.cursor)
}

func TestApp_ApproveSelected(t *testing.T) {
	approved := &domain.Item{ID: 1, Stem: "What do mitochondria produce?", Status: domain.StatusApproved}
	review := &mockReviewService{item: approved}
	app := setupApp(t, review, nil)

	_, cmd := app.Update(keyMsg("a"))
	require.NotNil(t, cmd)

	model, _ := app.Update(cmd())
	app = model.(*App)

	assert.Equal(t, 1, review.approves)
	assert.Equal(t, domain.StatusApproved, app.items[0].Status)
	assert.Contains(t, app.statusLn, "approved")
}

func TestApp_RejectSelected(t *testing.T) {
	rejected := &domain.Item{ID: 1, Status: domain.StatusRejected}
	review := &mockReviewService{item: rejected}
	app := setupApp(t, review, nil)

	_, cmd := app.Update(keyMsg("r"))
	require.NotNil(t, cmd)

	model, _ := app.Update(cmd())
	app = model.(*App)

	assert.Equal(t, 1, review.rejects)
	assert.Equal(t, domain.StatusRejected, app.items[0].Status)
}

func TestApp_Commit(t *testing.T) {
	review := &mockReviewService{receipt: &domain.CommitReceipt{BatchID: "b-1", Count: 2}}
	app := setupApp(t, review, nil)

	_, cmd := app.Update(keyMsg("c"))
	require.NotNil(t, cmd)

	model, _ := app.Update(cmd())
	app = model.(*App)

	assert.Contains(t, app.statusLn, "Committed 2 items")
	// Commit triggers a reload
	assert.True(t, app.loading)
}

func TestApp_CommitEmptyCart(t *testing.T) {
	review := &mockReviewService{err: domain.ErrEmptyCart}
	app := setupApp(t, review, nil)

	_, cmd := app.Update(keyMsg("c"))
	model, _ := app.Update(cmd())
	app = model.(*App)

	assert.Contains(t, app.View(), domain.ErrEmptyCart.Error())
}

func TestApp_SimilarPane(t *testing.T) {
	similarity := &mockSimilarityService{
		result: &domain.SimilarResult{
			Results: []domain.SimilarItem{{ID: 2, Score: 0.876}},
		},
	}
	app := setupApp(t, &mockReviewService{}, similarity)

	_, cmd := app.Update(keyMsg("s"))
	require.NotNil(t, cmd)

	model, _ := app.Update(cmd())
	app = model.(*App)

	require.NotNil(t, app.similar)
	view := app.View()
	assert.Contains(t, view, "Similar to #1")
	assert.Contains(t, view, "0.876")

	// Moving the cursor clears the pane
	model, _ = app.Update(keyMsg("j"))
	app = model.(*App)
	assert.Nil(t, app.similar)
}

func TestApp_SimilarWithoutService(t *testing.T) {
	app := setupApp(t, &mockReviewService{}, nil)

	_, cmd := app.Update(keyMsg("s"))
	assert.Nil(t, cmd)
}

func TestApp_Quit(t *testing.T) {
	app := setupApp(t, &mockReviewService{}, nil)

	_, cmd := app.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
