package claim

import (
	"context"
	"sync"
)

// MemoryStore is a Store backed by a guarded map. Hosts use it when no
// database is configured; tests use it everywhere.
type MemoryStore struct {
	mu    sync.RWMutex
	cases map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cases: make(map[string]Record)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.cases[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *MemoryStore) Put(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cases[rec.ID] = rec
	return nil
}

// Len reports the number of stored cases.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cases)
}
