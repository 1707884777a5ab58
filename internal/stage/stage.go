// Package stage implements the staging index: the pending additions and
// deletions that the next commit applies on top of HEAD's snapshot.
//
// The index is a pure in-memory value; persistence between command
// invocations belongs to the state layer. Staging an addition does not
// implicitly drop a pending deletion of the same name (or vice versa):
// callers unstage the opposite side explicitly.
package stage

import (
	"sort"

	"github.com/grovevcs/grove/internal/blob"
)

// Record pairs a tracked file name with the blob holding its staged content.
type Record struct {
	Name string    `json:"name"`
	Blob blob.Hash `json:"blob"`
}

// Index holds the files staged for addition and deletion.
type Index struct {
	Additions map[string]Record   `json:"additions"`
	Deletions map[string]struct{} `json:"deletions"`
}

// NewIndex creates an empty staging index.
func NewIndex() *Index {
	return &Index{
		Additions: make(map[string]Record),
		Deletions: make(map[string]struct{}),
	}
}

// StageAddition stores the content in the blob store and records the file
// for addition, replacing any earlier pending addition of the same name.
func (ix *Index) StageAddition(store blob.Store, name string, data []byte) error {
	hash, err := store.Put(name, data)
	if err != nil {
		return err
	}
	ix.Additions[name] = Record{Name: name, Blob: hash}
	return nil
}

// UnstageAddition removes a pending addition and reports whether one existed.
func (ix *Index) UnstageAddition(name string) bool {
	if _, ok := ix.Additions[name]; !ok {
		return false
	}
	delete(ix.Additions, name)
	return true
}

// StageDeletion records a deletion marker for the file.
func (ix *Index) StageDeletion(name string) {
	ix.Deletions[name] = struct{}{}
}

// UnstageDeletion removes a pending deletion and reports whether one existed.
func (ix *Index) UnstageDeletion(name string) bool {
	if _, ok := ix.Deletions[name]; !ok {
		return false
	}
	delete(ix.Deletions, name)
	return true
}

// IsEmpty reports whether nothing is staged.
func (ix *Index) IsEmpty() bool {
	return len(ix.Additions) == 0 && len(ix.Deletions) == 0
}

// Clear empties both sides of the index.
func (ix *Index) Clear() {
	ix.Additions = make(map[string]Record)
	ix.Deletions = make(map[string]struct{})
}

// AdditionNames returns the staged-addition file names in sorted order.
func (ix *Index) AdditionNames() []string {
	names := make([]string, 0, len(ix.Additions))
	for name := range ix.Additions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeletionNames returns the staged-deletion file names in sorted order.
func (ix *Index) DeletionNames() []string {
	names := make([]string, 0, len(ix.Deletions))
	for name := range ix.Deletions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
