package localstore

import (
	"context"
	"sync"
)

// Memory is an in-process Storage. Values are lost when the process exits.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemory returns an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{items: map[string]string{}}
}

// GetItem returns the stored value for key or ErrNotFound.
func (m *Memory) GetItem(_ context.Context, key string) (string, error) {
	key, err := NormalizeKey(key)
	if err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// SetItem stores value under key.
func (m *Memory) SetItem(_ context.Context, key string, value string) error {
	key, err := NormalizeKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = map[string]string{}
	}
	m.items[key] = value
	return nil
}

// RemoveItem deletes key; absent keys are ignored.
func (m *Memory) RemoveItem(_ context.Context, key string) error {
	key, err := NormalizeKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Len reports how many keys are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
