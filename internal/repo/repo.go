// Package repo assembles a repository from its parts: the on-disk object
// store, the working tree, the commit graph, the staging index, and the
// state database, all rooted in one directory.
package repo

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/grovevcs/grove/internal/blob"
	"github.com/grovevcs/grove/internal/commitgraph"
	"github.com/grovevcs/grove/internal/logging"
	"github.com/grovevcs/grove/internal/stage"
	"github.com/grovevcs/grove/internal/state"
	"github.com/grovevcs/grove/internal/worktree"
)

// MetaDir is the metadata directory name inside the working directory.
const MetaDir = ".grove"

// As with the core errors, the text is the line the command surface prints.
var (
	ErrAlreadyExists  = errors.New("A grove version-control system already exists in the current directory.")
	ErrNotInitialized = errors.New("Not in an initialized grove directory.")
)

// Repository bundles everything a command needs. Commands mutate Graph and
// Index in memory and call Save before exiting.
type Repository struct {
	Dir   string
	Store blob.Store
	Tree  worktree.Tree
	Graph *commitgraph.Graph
	Index *stage.Index
	Log   *logging.Logger

	db *state.DB
}

func metaPath(dir string) string    { return filepath.Join(dir, MetaDir) }
func objectsPath(dir string) string { return filepath.Join(metaPath(dir), "objects") }
func statePath(dir string) string   { return filepath.Join(metaPath(dir), "state.db") }

func isInitialized(dir string) bool {
	info, err := os.Stat(metaPath(dir))
	return err == nil && info.IsDir()
}

// Init creates the metadata directory, the root commit, and the default
// branch, then persists the fresh state.
func Init(dir string) (*Repository, error) {
	if isInitialized(dir) {
		return nil, ErrAlreadyExists
	}
	if err := os.MkdirAll(objectsPath(dir), 0755); err != nil {
		return nil, err
	}

	log, err := logging.New(metaPath(dir))
	if err != nil {
		return nil, err
	}
	db, err := state.Open(statePath(dir))
	if err != nil {
		return nil, err
	}

	store, err := blob.NewFileStore(objectsPath(dir))
	if err != nil {
		db.Close()
		return nil, err
	}
	tree := worktree.NewDir(dir)
	r := &Repository{
		Dir:   dir,
		Store: store,
		Tree:  tree,
		Graph: commitgraph.New(store, tree),
		Index: stage.NewIndex(),
		Log:   log,
		db:    db,
	}
	if err := r.Save(); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("repository initialized", zap.String("dir", dir))
	return r, nil
}

// Open loads an existing repository's graph and staging index.
func Open(dir string) (*Repository, error) {
	if !isInitialized(dir) {
		return nil, ErrNotInitialized
	}

	log, err := logging.New(metaPath(dir))
	if err != nil {
		return nil, err
	}
	db, err := state.Open(statePath(dir))
	if err != nil {
		return nil, err
	}

	store, err := blob.NewFileStore(objectsPath(dir))
	if err != nil {
		db.Close()
		return nil, err
	}
	tree := worktree.NewDir(dir)
	graph, err := db.LoadGraph(store, tree)
	if err != nil {
		db.Close()
		return nil, err
	}
	index, err := db.LoadIndex()
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{
		Dir:   dir,
		Store: store,
		Tree:  tree,
		Graph: graph,
		Index: index,
		Log:   log,
		db:    db,
	}, nil
}

// Save persists the graph and the staging index.
func (r *Repository) Save() error {
	if err := r.db.SaveGraph(r.Graph); err != nil {
		return err
	}
	return r.db.SaveIndex(r.Index)
}

// Close releases the state database. Safe to call after Save.
func (r *Repository) Close() error {
	_ = r.Log.Sync()
	return r.db.Close()
}
