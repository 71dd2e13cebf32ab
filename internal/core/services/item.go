package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driving"
)

// Ensure ItemService implements the interface.
var _ driving.ItemService = (*ItemService)(nil)

// DefaultListLimit bounds item listings when no limit is given.
const DefaultListLimit = 50

// ItemService manages the exam item bank.
type ItemService struct {
	store driven.ItemStore
}

// NewItemService creates an item service.
func NewItemService(store driven.ItemStore) *ItemService {
	return &ItemService{store: store}
}

// Create stores a manually authored item with status "new".
func (s *ItemService) Create(ctx context.Context, draft domain.ItemDraft) (*domain.Item, error) {
	if strings.TrimSpace(draft.Answer) == "" {
		return nil, fmt.Errorf("%w: answer is required", domain.ErrInvalidInput)
	}
	if len(draft.Choices) == 0 {
		return nil, fmt.Errorf("%w: at least one choice is required", domain.ErrInvalidInput)
	}

	metadata := draft.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	item := &domain.Item{
		Source:   domain.SourceManual,
		Stimulus: draft.Stimulus,
		Stem:     draft.Stem,
		Choices:  draft.Choices,
		Answer:   draft.Answer,
		Metadata: metadata,
		Status:   domain.StatusNew,
	}
	if err := s.store.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("saving item: %w", err)
	}
	return item, nil
}

// Get retrieves an item by ID.
func (s *ItemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return s.store.Get(ctx, id)
}

// List returns the most recent items, newest first.
func (s *ItemService) List(ctx context.Context, limit int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.store.List(ctx, limit)
}
