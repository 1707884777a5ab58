// Package worktree gives the engine a narrow view of the working
// directory: a flat set of plain files identified by name.
//
// Two implementations exist: Dir, backed by an OS directory, and Mem,
// a map-backed tree used in tests so graph and merge logic never touch
// the disk.
package worktree

// Tree is the working-tree contract the engine operates against.
type Tree interface {
	// Read returns the file's bytes.
	Read(name string) ([]byte, error)

	// Write creates or overwrites the file with the given bytes.
	Write(name string, data []byte) error

	// Remove deletes the file.
	Remove(name string) error

	// List returns the names of all plain files, sorted.
	List() ([]string, error)

	// Exists reports whether a plain file with the given name is present.
	Exists(name string) bool
}
