package commitgraph

import (
	"sort"
	"strings"
	"time"

	"github.com/grovevcs/grove/internal/blob"
	"github.com/grovevcs/grove/internal/stage"
	"github.com/grovevcs/grove/internal/worktree"
)

// dateLayout renders commit timestamps in log output.
const dateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// Graph is the commit DAG plus the branch table and HEAD pointer. Commits
// only accumulate: reset and branch removal move pointers, they never
// delete nodes.
type Graph struct {
	Commits  map[string]*Node  // every commit ever created, by id
	Branches map[string]string // branch name -> commit id
	Current  string            // name of the current branch

	store blob.Store
	tree  worktree.Tree
}

// New creates a graph holding only the root commit, with the default
// branch as HEAD. Invoked once per repository.
func New(store blob.Store, tree worktree.Tree) *Graph {
	root := rootNode()
	return &Graph{
		Commits:  map[string]*Node{root.ID: root},
		Branches: map[string]string{DefaultBranch: root.ID},
		Current:  DefaultBranch,
		store:    store,
		tree:     tree,
	}
}

// NewFrom assembles a graph from previously persisted state.
func NewFrom(store blob.Store, tree worktree.Tree, commits map[string]*Node, branches map[string]string, current string) *Graph {
	return &Graph{
		Commits:  commits,
		Branches: branches,
		Current:  current,
		store:    store,
		tree:     tree,
	}
}

// Head returns the commit the current branch points at.
func (g *Graph) Head() *Node {
	return g.Commits[g.Branches[g.Current]]
}

// Commit builds a child snapshot from HEAD plus the staged changes,
// records the new node, advances the current branch, and clears the
// staging index.
func (g *Graph) Commit(ix *stage.Index, message string) (*Node, error) {
	if ix.IsEmpty() {
		return nil, ErrNoChanges
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}

	parent := g.Head()
	snapshot := make(map[string]blob.Hash, len(parent.Snapshot)+len(ix.Additions))
	for name, hash := range parent.Snapshot {
		snapshot[name] = hash
	}
	for name, rec := range ix.Additions {
		snapshot[name] = rec.Blob
	}
	for name := range ix.Deletions {
		delete(snapshot, name)
	}

	node := newNode(parent.ID, message, time.Now(), snapshot)
	g.Commits[node.ID] = node
	g.Branches[g.Current] = node.ID
	ix.Clear()
	return node, nil
}

// AddFile stages the working-tree file's content for the next commit. A
// file staged for deletion is recovered instead: the pending deletion is
// dropped and HEAD's bytes are rewritten to the working tree, whatever the
// file currently holds. A file identical to HEAD's version is not staged,
// and a stale staged copy is dropped.
func (g *Graph) AddFile(name string, ix *stage.Index) error {
	if ix.UnstageDeletion(name) {
		return g.checkoutFrom(g.Head(), name)
	}
	if !g.tree.Exists(name) {
		return ErrFileMissing
	}
	data, err := g.tree.Read(name)
	if err != nil {
		return err
	}
	if hash, ok := g.Head().Snapshot[name]; ok && hash == blob.Sum(name, data) {
		ix.UnstageAddition(name)
		return nil
	}
	return ix.StageAddition(g.store, name, data)
}

// RemoveFile stages a deletion for a file tracked by HEAD and deletes it
// from the working tree.
func (g *Graph) RemoveFile(name string, ix *stage.Index) error {
	if !g.Head().Tracks(name) {
		return ErrNotTracked
	}
	ix.StageDeletion(name)
	if g.tree.Exists(name) {
		return g.tree.Remove(name)
	}
	return nil
}

// LogEntry is one rendered commit in history output.
type LogEntry struct {
	ID      string
	Date    string
	Message string
}

func entryFor(node *Node) LogEntry {
	return LogEntry{
		ID:      node.ID,
		Date:    node.Time.Format(dateLayout),
		Message: node.Message,
	}
}

// Log walks first-parent links from HEAD to the root, newest first.
func (g *Graph) Log() []LogEntry {
	var entries []LogEntry
	for node := g.Head(); node != nil; node = g.Commits[node.Parent] {
		entries = append(entries, entryFor(node))
	}
	return entries
}

// GlobalLog returns every commit ever created, in unspecified order.
func (g *Graph) GlobalLog() []LogEntry {
	entries := make([]LogEntry, 0, len(g.Commits))
	for _, node := range g.Commits {
		entries = append(entries, entryFor(node))
	}
	return entries
}

// FindByMessage returns the ids of all commits whose message matches
// exactly.
func (g *Graph) FindByMessage(message string) ([]string, error) {
	var ids []string
	for _, node := range g.Commits {
		if node.Message == message {
			ids = append(ids, node.ID)
		}
	}
	if len(ids) == 0 {
		return nil, ErrNoCommitForMessage
	}
	return ids, nil
}

// Status renders the branch list (current branch starred) and the staged
// file names. The modified/untracked sections are declared but carry no
// computed content.
func (g *Graph) Status(ix *stage.Index) string {
	var b strings.Builder

	b.WriteString("=== Branches ===\n")
	branches := make([]string, 0, len(g.Branches))
	for name := range g.Branches {
		branches = append(branches, name)
	}
	sort.Strings(branches)
	for _, name := range branches {
		if name == g.Current {
			b.WriteString("*")
		}
		b.WriteString(name)
		b.WriteString("\n")
	}

	b.WriteString("\n=== Staged Files ===\n")
	for _, name := range ix.AdditionNames() {
		b.WriteString(name)
		b.WriteString("\n")
	}

	b.WriteString("\n=== Removed Files ===\n")
	for _, name := range ix.DeletionNames() {
		b.WriteString(name)
		b.WriteString("\n")
	}

	b.WriteString("\n=== Modifications Not Staged For Commit ===\n")
	b.WriteString("\n=== Untracked Files ===\n")
	return b.String()
}

// CheckoutFile overwrites the working-tree file with HEAD's version.
func (g *Graph) CheckoutFile(name string) error {
	return g.checkoutFrom(g.Head(), name)
}

// CheckoutFileAt overwrites the working-tree file with the version in the
// commit named by ref.
func (g *Graph) CheckoutFileAt(ref, name string) error {
	node := g.Resolve(ref)
	if node == nil {
		return ErrNoSuchCommit
	}
	return g.checkoutFrom(node, name)
}

func (g *Graph) checkoutFrom(node *Node, name string) error {
	hash, ok := node.Snapshot[name]
	if !ok {
		return ErrFileNotInCommit
	}
	data, err := g.store.Get(hash)
	if err != nil {
		return err
	}
	return g.tree.Write(name, data)
}

// CheckoutBranch rewrites the working tree to the target branch's
// snapshot, clears the staging index, and switches HEAD.
func (g *Graph) CheckoutBranch(name string, ix *stage.Index) error {
	targetID, ok := g.Branches[name]
	if !ok {
		return ErrNoSuchBranch
	}
	if name == g.Current {
		return ErrCheckoutCurrent
	}
	target := g.Commits[targetID]
	if err := g.CheckUntracked(target); err != nil {
		return err
	}
	if err := g.materialize(target); err != nil {
		return err
	}
	ix.Clear()
	g.Current = name
	return nil
}

// CheckUntracked fails if a working-tree file untracked by HEAD would be
// overwritten by the target commit's snapshot. Runs before any mutation.
func (g *Graph) CheckUntracked(target *Node) error {
	names, err := g.tree.List()
	if err != nil {
		return err
	}
	head := g.Head()
	for _, name := range names {
		if !head.Tracks(name) && target.Tracks(name) {
			return ErrUntrackedInTheWay
		}
	}
	return nil
}

// materialize writes every file in the target snapshot and deletes files
// tracked by HEAD but absent from the target.
func (g *Graph) materialize(target *Node) error {
	for name, hash := range target.Snapshot {
		data, err := g.store.Get(hash)
		if err != nil {
			return err
		}
		if err := g.tree.Write(name, data); err != nil {
			return err
		}
	}
	for name := range g.Head().Snapshot {
		if !target.Tracks(name) && g.tree.Exists(name) {
			if err := g.tree.Remove(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddBranch creates a branch pointing at the current HEAD.
func (g *Graph) AddBranch(name string) error {
	if _, ok := g.Branches[name]; ok {
		return ErrBranchExists
	}
	g.Branches[name] = g.Branches[g.Current]
	return nil
}

// RemoveBranch deletes a branch pointer. History stays reachable through
// the commit table.
func (g *Graph) RemoveBranch(name string) error {
	if _, ok := g.Branches[name]; !ok {
		return ErrBranchMissing
	}
	if name == g.Current {
		return ErrRemoveCurrentBranch
	}
	delete(g.Branches, name)
	return nil
}

// Reset rewrites the working tree to the target commit's snapshot, clears
// the staging index, and moves the current branch pointer there. Commits
// between the old and new HEAD are not deleted.
func (g *Graph) Reset(ref string, ix *stage.Index) error {
	node := g.Resolve(ref)
	if node == nil {
		return ErrNoSuchCommit
	}
	if err := g.CheckUntracked(node); err != nil {
		return err
	}
	if err := g.materialize(node); err != nil {
		return err
	}
	ix.Clear()
	g.Branches[g.Current] = node.ID
	return nil
}

// Resolve returns the commit named by ref: an exact id match first, then
// the first stored id carrying ref as a prefix. When several ids share the
// prefix the choice follows map iteration order and is unspecified.
// Returns nil when nothing matches.
func (g *Graph) Resolve(ref string) *Node {
	if ref == "" {
		return nil
	}
	if node, ok := g.Commits[ref]; ok {
		return node
	}
	for id, node := range g.Commits {
		if strings.HasPrefix(id, ref) {
			return node
		}
	}
	return nil
}
