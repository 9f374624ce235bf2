// Package store provides persisted client storage: a flat string key/value
// space that outlives a single page, like a browser's local storage.
package store

import "sync"

// CurrentUserKey holds the id of the user whose tasks are shown.
const CurrentUserKey = "currentUser"

// Store is a string key/value store.
type Store interface {
	// GetItem returns the value for key and whether it was present.
	GetItem(key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error

	Close() error
}

// CurrentUser reads CurrentUserKey from s. An empty value counts as absent.
func CurrentUser(s Store) (string, error) {
	v, ok, err := s.GetItem(CurrentUserKey)
	if err != nil || !ok {
		return "", err
	}
	return v, nil
}

// Memory is an in-memory Store.
type Memory struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) GetItem(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
