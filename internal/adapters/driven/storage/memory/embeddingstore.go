package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
)

// Ensure EmbeddingStore implements the interface.
var _ driven.EmbeddingStore = (*EmbeddingStore)(nil)

// EmbeddingStore is an in-memory implementation of driven.EmbeddingStore.
type EmbeddingStore struct {
	mu      sync.RWMutex
	records map[int64]domain.EmbeddingRecord

	// Corrupt marks item IDs whose records should behave as undecodable.
	corrupt map[int64]bool
}

// NewEmbeddingStore creates a new in-memory embedding store.
func NewEmbeddingStore() *EmbeddingStore {
	return &EmbeddingStore{
		records: make(map[int64]domain.EmbeddingRecord),
		corrupt: make(map[int64]bool),
	}
}

// Get retrieves the stored embedding for an item.
func (s *EmbeddingStore) Get(_ context.Context, itemID int64) (*domain.EmbeddingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.corrupt[itemID] {
		return nil, domain.ErrCorruptRecord
	}
	rec, ok := s.records[itemID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	out := rec
	out.Vector = append([]float32(nil), rec.Vector...)
	return &out, nil
}

// Upsert inserts or replaces the record keyed by ItemID.
func (s *EmbeddingStore) Upsert(_ context.Context, rec *domain.EmbeddingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *rec
	stored.Vector = append([]float32(nil), rec.Vector...)
	s.records[rec.ItemID] = stored
	delete(s.corrupt, rec.ItemID)
	return nil
}

// LoadPoolExcept returns every stored embedding except the given item's,
// skipping records marked corrupt.
func (s *EmbeddingStore) LoadPoolExcept(_ context.Context, itemID int64) ([]domain.PoolEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pool []domain.PoolEntry
	for id, rec := range s.records {
		if id == itemID || s.corrupt[id] {
			continue
		}
		pool = append(pool, domain.PoolEntry{
			ItemID: id,
			Vector: append([]float32(nil), rec.Vector...),
		})
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].ItemID < pool[j].ItemID })
	return pool, nil
}

// MarkCorrupt makes the record for itemID behave as undecodable.
func (s *EmbeddingStore) MarkCorrupt(itemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corrupt[itemID] = true
}

// Len reports how many records are stored.
func (s *EmbeddingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
