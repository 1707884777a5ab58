// Package state persists the commit graph and staging index in a bbolt
// database. Values are JSON; the rest of the program treats the format as
// opaque and only relies on load-at-start/save-at-end symmetry.
package state

import (
	"encoding/json"
	"errors"

	"go.etcd.io/bbolt"

	"github.com/grovevcs/grove/internal/blob"
	"github.com/grovevcs/grove/internal/commitgraph"
	"github.com/grovevcs/grove/internal/stage"
	"github.com/grovevcs/grove/internal/worktree"
)

// Buckets
var (
	BucketCommits  = []byte("commits")  // commit id -> commit node JSON
	BucketBranches = []byte("branches") // branch name -> commit id
	BucketStaging  = []byte("staging")  // staged additions and deletions
	BucketMeta     = []byte("meta")     // repository-level keys
)

// Keys inside BucketMeta and BucketStaging.
var (
	keyCurrentBranch = []byte("current-branch")
	keyAdditions     = []byte("additions")
	keyDeletions     = []byte("deletions")
)

type DB struct{ *bbolt.DB }

func Open(path string) (*DB, error) {
	db, err := bbolt.Open(path, 0666, nil)
	if err != nil {
		return nil, err
	}
	// Ensure buckets exist
	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{BucketCommits, BucketBranches, BucketStaging, BucketMeta} {
			if _, e := tx.CreateBucketIfNotExists(bucket); e != nil {
				return e
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db}, nil
}

func (db *DB) Close() error { return db.DB.Close() }

// SaveGraph writes every commit, the full branch table, and the current
// branch name. The branches bucket is rebuilt so removed branches do not
// linger.
func (db *DB) SaveGraph(g *commitgraph.Graph) error {
	return db.Update(func(tx *bbolt.Tx) error {
		commits := tx.Bucket(BucketCommits)
		for id, node := range g.Commits {
			raw, err := json.Marshal(node)
			if err != nil {
				return err
			}
			if err := commits.Put([]byte(id), raw); err != nil {
				return err
			}
		}

		if err := tx.DeleteBucket(BucketBranches); err != nil {
			return err
		}
		branches, err := tx.CreateBucket(BucketBranches)
		if err != nil {
			return err
		}
		for name, id := range g.Branches {
			if err := branches.Put([]byte(name), []byte(id)); err != nil {
				return err
			}
		}

		return tx.Bucket(BucketMeta).Put(keyCurrentBranch, []byte(g.Current))
	})
}

// LoadGraph reads the commit table, branch table, and current branch name
// and assembles a graph over the given store and working tree.
func (db *DB) LoadGraph(store blob.Store, tree worktree.Tree) (*commitgraph.Graph, error) {
	commits := make(map[string]*commitgraph.Node)
	branches := make(map[string]string)
	var current string

	err := db.View(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(BucketCommits).ForEach(func(k, v []byte) error {
			var node commitgraph.Node
			if err := json.Unmarshal(v, &node); err != nil {
				return err
			}
			commits[string(k)] = &node
			return nil
		}); err != nil {
			return err
		}

		if err := tx.Bucket(BucketBranches).ForEach(func(k, v []byte) error {
			branches[string(k)] = string(v)
			return nil
		}); err != nil {
			return err
		}

		raw := tx.Bucket(BucketMeta).Get(keyCurrentBranch)
		if raw == nil {
			return errors.New("state database holds no current branch")
		}
		current = string(raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commitgraph.NewFrom(store, tree, commits, branches, current), nil
}

// SaveIndex writes the staged additions and deletions.
func (db *DB) SaveIndex(ix *stage.Index) error {
	additions, err := json.Marshal(ix.Additions)
	if err != nil {
		return err
	}
	deletions, err := json.Marshal(ix.Deletions)
	if err != nil {
		return err
	}
	return db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(BucketStaging)
		if err := bucket.Put(keyAdditions, additions); err != nil {
			return err
		}
		return bucket.Put(keyDeletions, deletions)
	})
}

// LoadIndex reads the staging index. A database never saved to yields an
// empty index.
func (db *DB) LoadIndex() (*stage.Index, error) {
	ix := stage.NewIndex()
	err := db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(BucketStaging)
		if raw := bucket.Get(keyAdditions); raw != nil {
			if err := json.Unmarshal(raw, &ix.Additions); err != nil {
				return err
			}
		}
		if raw := bucket.Get(keyDeletions); raw != nil {
			if err := json.Unmarshal(raw, &ix.Deletions); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ix, nil
}
