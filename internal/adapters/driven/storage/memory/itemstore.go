// Package memory provides in-memory store implementations for testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
)

// Ensure ItemStore implements the interface.
var _ driven.ItemStore = (*ItemStore)(nil)

// ItemStore is an in-memory implementation of driven.ItemStore.
type ItemStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Item
}

// NewItemStore creates a new in-memory item store.
func NewItemStore() *ItemStore {
	return &ItemStore{
		nextID: 1,
		items:  make(map[int64]domain.Item),
	}
}

// Save stores a new item and assigns its ID.
func (s *ItemStore) Save(_ context.Context, item *domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextID
	s.nextID++
	s.items[item.ID] = *item
	return nil
}

// Get retrieves an item by ID.
func (s *ItemStore) Get(_ context.Context, id int64) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

// List returns the most recent items, newest first, up to limit.
func (s *ItemStore) List(_ context.Context, limit int) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })

	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

// UpdateStatus sets the review status of an item.
func (s *ItemStore) UpdateStatus(_ context.Context, id int64, status domain.ItemStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Status = status
	s.items[id] = item
	return nil
}

// ListCart returns approved items that have not been committed.
func (s *ItemStore) ListCart(_ context.Context) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cart []domain.Item
	for _, item := range s.items {
		if item.Status == domain.StatusApproved && !item.Committed {
			cart = append(cart, item)
		}
	}
	sort.Slice(cart, func(i, j int) bool { return cart[i].ID < cart[j].ID })
	return cart, nil
}

// CommitCart marks all approved, uncommitted items as committed.
func (s *ItemStore) CommitCart(_ context.Context, batchID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, item := range s.items {
		if item.Status == domain.StatusApproved && !item.Committed {
			item.Committed = true
			item.CommitBatch = batchID
			s.items[id] = item
			count++
		}
	}
	return count, nil
}
