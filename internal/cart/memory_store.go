package cart

import (
	"context"
	"slices"
	"sync"

	"checkout-core/internal/model"
)

// MemoryStore keeps cart lines in a slice. It is the store used for test isolation.
type MemoryStore struct {
	mu     sync.Mutex
	items  []model.Item
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append stores a new line.
func (s *MemoryStore) Append(_ context.Context, item model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.items = append(s.items, item)
	return nil
}

// Items returns a copy of the stored lines.
func (s *MemoryStore) Items(_ context.Context) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if len(s.items) == 0 {
		return []model.Item{}, nil
	}
	return slices.Clone(s.items), nil
}

// ResetDatabase drops every line.
func (s *MemoryStore) ResetDatabase(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.items = nil
	return nil
}

// Close marks the store closed and releases the lines.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.items = nil
	return nil
}
