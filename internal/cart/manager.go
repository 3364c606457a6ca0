package cart

import (
	"context"
	"fmt"
	"sync"
)

// Manager hands out one Store per cart session, restoring the persisted
// snapshot the first time a session is seen.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	persister Persister
}

// NewManager builds a Manager backed by the given persister.
func NewManager(persister Persister) (*Manager, error) {
	if persister == nil {
		return nil, fmt.Errorf("cart persister required")
	}
	return &Manager{
		stores:    make(map[string]*Store),
		persister: persister,
	}, nil
}

// Store returns the store for the session, creating and restoring it on
// first use.
func (m *Manager) Store(ctx context.Context, sessionID string) (*Store, error) {
	m.mu.Lock()
	if store, ok := m.stores[sessionID]; ok {
		m.mu.Unlock()
		return store, nil
	}
	m.mu.Unlock()

	store, err := NewStore(sessionID, m.persister)
	if err != nil {
		return nil, err
	}
	if err := store.Restore(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.stores[sessionID]; ok {
		return existing, nil
	}
	m.stores[sessionID] = store
	return store, nil
}

// Drop evicts the in-memory store for a session. The persisted snapshot is
// untouched.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	delete(m.stores, sessionID)
	m.mu.Unlock()
}
