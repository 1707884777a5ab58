package worktree

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// Mem implements Tree in memory.
type Mem struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMem creates an empty in-memory tree.
func NewMem() *Mem {
	return &Mem{files: make(map[string][]byte)}
}

// Read implements Tree.Read.
func (m *Mem) Read(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", name, os.ErrNotExist)
	}
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Write implements Tree.Write.
func (m *Mem) Write(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	m.files[name] = dataCopy
	return nil
}

// Remove implements Tree.Remove.
func (m *Mem) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[name]; !ok {
		return fmt.Errorf("remove %s: %w", name, os.ErrNotExist)
	}
	delete(m.files, name)
	return nil
}

// List implements Tree.List.
func (m *Mem) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Exists implements Tree.Exists.
func (m *Mem) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[name]
	return ok
}
