// Package merge implements three-way branch merging over the commit
// graph: split-point search by ancestor-closure intersection, per-file
// reconciliation across the split, HEAD, and other snapshots, and
// deterministic conflict materialization.
package merge

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/grovevcs/grove/internal/blob"
	"github.com/grovevcs/grove/internal/commitgraph"
	"github.com/grovevcs/grove/internal/stage"
	"github.com/grovevcs/grove/internal/worktree"
)

// Validation errors specific to merging. As elsewhere, the error text is
// the exact line the command surface prints.
var (
	ErrUncommittedChanges = errors.New("You have uncommitted changes.")
	ErrSelfMerge          = errors.New("Cannot merge a branch with itself.")
)

// Conflict marker lines written into a conflicted working-tree file.
const (
	markerHead      = "<<<<<<< HEAD\n"
	markerSeparator = "=======\n"
	markerClose     = ">>>>>>>\n"
)

// Outcome classifies how a merge resolved.
type Outcome int

const (
	// Merged means a new commit with a second parent was created.
	Merged Outcome = iota
	// AlreadyAncestor means the other branch's head is an ancestor of
	// HEAD and nothing changed.
	AlreadyAncestor
	// FastForwarded means HEAD was an ancestor of the other branch's
	// head and the merge degenerated to a branch checkout.
	FastForwarded
)

// Result reports what a merge did.
type Result struct {
	Outcome  Outcome
	Conflict bool
	Commit   *commitgraph.Node // set only when Outcome is Merged
}

// Engine performs merges. It is stateless beyond the graph's data.
type Engine struct {
	graph *commitgraph.Graph
	store blob.Store
	tree  worktree.Tree
}

// NewEngine creates a merge engine over the given graph and its backing
// store and working tree.
func NewEngine(graph *commitgraph.Graph, store blob.Store, tree worktree.Tree) *Engine {
	return &Engine{graph: graph, store: store, tree: tree}
}

// Merge merges the named branch into the current one. Preconditions are
// checked in order before any mutation: empty staging index, branch
// exists, branch differs from current, no untracked file would be
// overwritten.
func (e *Engine) Merge(ix *stage.Index, otherBranch string) (*Result, error) {
	if !ix.IsEmpty() {
		return nil, ErrUncommittedChanges
	}
	otherID, ok := e.graph.Branches[otherBranch]
	if !ok {
		return nil, commitgraph.ErrBranchMissing
	}
	if otherBranch == e.graph.Current {
		return nil, ErrSelfMerge
	}
	other := e.graph.Commits[otherID]
	if err := e.graph.CheckUntracked(other); err != nil {
		return nil, err
	}

	head := e.graph.Head()
	split := e.splitPoint(head, other)

	if split.ID == other.ID {
		return &Result{Outcome: AlreadyAncestor}, nil
	}
	if split.ID == head.ID {
		if err := e.graph.CheckoutBranch(otherBranch, ix); err != nil {
			return nil, err
		}
		return &Result{Outcome: FastForwarded}, nil
	}

	conflict, err := e.reconcile(split, head, other, ix)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Merged %s into %s.", otherBranch, e.graph.Current)
	node, err := e.graph.Commit(ix, message)
	if err != nil {
		return nil, err
	}
	// The second parent edge is what future ancestor closures traverse.
	node.MergedParent = other.ID

	return &Result{Outcome: Merged, Conflict: conflict, Commit: node}, nil
}

// ancestors computes the transitive closure over parent and merged-parent
// edges. Iterative with an explicit worklist: long histories must not
// exhaust the stack.
func (e *Engine) ancestors(start *commitgraph.Node) map[string]struct{} {
	seen := make(map[string]struct{})
	work := []string{start.ID}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		node := e.graph.Commits[id]
		if node == nil {
			continue
		}
		seen[id] = struct{}{}
		work = append(work, node.Parent, node.MergedParent)
	}
	return seen
}

// splitPoint returns the common ancestor with the latest timestamp. This
// is an approximation of the lowest common ancestor: criss-cross
// histories with several equally deep common ancestors can misresolve,
// and that behavior is kept deliberately.
func (e *Engine) splitPoint(head, other *commitgraph.Node) *commitgraph.Node {
	headSet := e.ancestors(head)
	otherSet := e.ancestors(other)

	var split *commitgraph.Node
	for id := range otherSet {
		if _, ok := headSet[id]; !ok {
			continue
		}
		node := e.graph.Commits[id]
		if split == nil || node.Time.After(split.Time) {
			split = node
		}
	}
	// The root commit is shared by all branches, so split is never nil.
	return split
}

// reconcile applies the three-way policy to every file present in either
// head, staging the resulting additions and deletions. Reports whether
// any file conflicted.
func (e *Engine) reconcile(split, head, other *commitgraph.Node, ix *stage.Index) (bool, error) {
	union := make(map[string]struct{}, len(head.Snapshot)+len(other.Snapshot))
	for name := range head.Snapshot {
		union[name] = struct{}{}
	}
	for name := range other.Snapshot {
		union[name] = struct{}{}
	}
	names := make([]string, 0, len(union))
	for name := range union {
		names = append(names, name)
	}
	sort.Strings(names)

	conflict := false
	for _, name := range names {
		fileConflict, err := e.mergeFile(name, split, head, other, ix)
		if err != nil {
			return conflict, err
		}
		if fileConflict {
			conflict = true
		}
	}
	return conflict, nil
}

// mergeFile classifies one file by comparing its blob hash at the split
// (s), in the other branch (o), and at HEAD (h), any of which may be
// absent.
func (e *Engine) mergeFile(name string, split, head, other *commitgraph.Node, ix *stage.Index) (bool, error) {
	s, hasS := split.Snapshot[name]
	o, hasO := other.Snapshot[name]
	h, hasH := head.Snapshot[name]

	switch {
	case !hasO:
		if !hasH || !hasS {
			return false, nil // never existed on other's side of the story
		}
		if h == s {
			// Head left it alone, other deleted it: keep deleted.
			ix.StageDeletion(name)
			if e.tree.Exists(name) {
				if err := e.tree.Remove(name); err != nil {
					return false, err
				}
			}
			return false, nil
		}
		return true, e.writeConflict(name, h, blob.Hash{}, ix)

	case !hasH:
		if !hasS {
			return false, e.takeOther(name, o, ix) // other added it
		}
		if o == s {
			return false, nil // head deleted it, other left it alone
		}
		return true, e.writeConflict(name, blob.Hash{}, o, ix)

	case !hasS:
		if h == o {
			return false, nil // both added the same content
		}
		return true, e.writeConflict(name, h, o, ix)

	case o == s:
		return false, nil // only head changed (or nobody did): keep head

	case h == s:
		return false, e.takeOther(name, o, ix) // only other changed

	case h == o:
		return false, nil // both made the identical change

	default:
		return true, e.writeConflict(name, h, o, ix)
	}
}

// takeOther stages the other branch's content and overwrites the
// working-tree file with it.
func (e *Engine) takeOther(name string, hash blob.Hash, ix *stage.Index) error {
	data, err := e.store.Get(hash)
	if err != nil {
		return err
	}
	if err := ix.StageAddition(e.store, name, data); err != nil {
		return err
	}
	return e.tree.Write(name, data)
}

// writeConflict materializes both sides between conflict markers, writes
// the result to the working tree, and stages it as an addition. A
// conflicted file is always staged as an addition, never as a deletion.
// The zero hash marks a side with no content, rendered as an empty span.
func (e *Engine) writeConflict(name string, headHash, otherHash blob.Hash, ix *stage.Index) error {
	var headBytes, otherBytes []byte
	var err error
	if !headHash.IsZero() {
		if headBytes, err = e.store.Get(headHash); err != nil {
			return err
		}
	}
	if !otherHash.IsZero() {
		if otherBytes, err = e.store.Get(otherHash); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	buf.WriteString(markerHead)
	buf.Write(headBytes)
	buf.WriteString(markerSeparator)
	buf.Write(otherBytes)
	buf.WriteString(markerClose)

	content := buf.Bytes()
	if err := e.tree.Write(name, content); err != nil {
		return err
	}
	return ix.StageAddition(e.store, name, content)
}
