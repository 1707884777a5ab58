package worktree

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir implements Tree over a single OS directory. Subdirectories (the
// repository's own metadata directory included) are invisible to it.
type Dir struct {
	root string
}

// NewDir creates a Tree over the given directory.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) path(name string) string {
	return filepath.Join(d.root, name)
}

// Read implements Tree.Read.
func (d *Dir) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(d.path(name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Write implements Tree.Write.
func (d *Dir) Write(name string, data []byte) error {
	if err := os.WriteFile(d.path(name), data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Remove implements Tree.Remove.
func (d *Dir) Remove(name string) error {
	if err := os.Remove(d.path(name)); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// List implements Tree.List. os.ReadDir returns entries sorted by name.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("list working tree: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Exists implements Tree.Exists.
func (d *Dir) Exists(name string) bool {
	info, err := os.Stat(d.path(name))
	return err == nil && info.Mode().IsRegular()
}
