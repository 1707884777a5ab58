package blob

import (
	"fmt"
	"sync"
)

// MemStore implements Store using in-memory storage with thread-safe access.
type MemStore struct {
	mu   sync.RWMutex
	data map[Hash][]byte
}

// NewMemStore creates a new in-memory blob store.
func NewMemStore() *MemStore {
	return &MemStore{
		data: make(map[Hash][]byte),
	}
}

// Put implements Store.Put.
func (m *MemStore) Put(name string, data []byte) (Hash, error) {
	hash := Sum(name, data)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[hash]; exists {
		return hash, nil
	}

	// Store a copy to avoid external mutations
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	m.data[hash] = dataCopy

	return hash, nil
}

// Get implements Store.Get.
func (m *MemStore) Get(hash Hash) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.data[hash]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
	}

	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Has implements Store.Has.
func (m *MemStore) Has(hash Hash) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.data[hash]
	return exists, nil
}

// Len returns the number of blobs stored.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
