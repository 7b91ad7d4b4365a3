package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store. Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	closed  bool
}

type memoryEntry struct {
	text     string
	storedAt time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, url string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrStoreClosed
	}
	e, ok := m.entries[url]
	if !ok {
		return "", ErrNotFound
	}
	return e.text, nil
}

// Put implements Store.
func (m *MemoryStore) Put(_ context.Context, url string, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	m.entries[url] = memoryEntry{text: text, storedAt: time.Now().UTC()}
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.entries, url)
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	clear(m.entries)
	return nil
}

// List implements Store.
func (m *MemoryStore) List(_ context.Context) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.entries))
	for url, e := range m.entries {
		infos = append(infos, Info{URL: url, StoredAt: e.storedAt, Size: int64(len(e.text))})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].StoredAt.Equal(infos[j].StoredAt) {
			return infos[i].URL < infos[j].URL
		}
		return infos[i].StoredAt.Before(infos[j].StoredAt)
	})
	return infos, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.entries = nil
	return nil
}
