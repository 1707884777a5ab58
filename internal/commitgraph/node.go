// Package commitgraph implements the commit DAG: immutable commit nodes,
// the branch table, the HEAD pointer, and every history operation short of
// merging (which layers on top in the merge package).
//
// Nodes reference their parents by id and are resolved through the graph's
// commit table, so the DAG carries no direct in-memory reference cycles.
package commitgraph

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"lukechampine.com/blake3"

	"github.com/grovevcs/grove/internal/blob"
)

// DefaultBranch is the branch created by repository initialization.
const DefaultBranch = "main"

// rootMessage is the fixed message of the root commit, identical in every
// repository so the root id is too.
const rootMessage = "initial commit"

// Node is one immutable commit. MergedParent is set only on merge commits.
type Node struct {
	ID           string               `json:"id"`
	Parent       string               `json:"parent,omitempty"`
	MergedParent string               `json:"merged_parent,omitempty"`
	Message      string               `json:"message"`
	Time         time.Time            `json:"time"`
	Snapshot     map[string]blob.Hash `json:"snapshot"`
}

// computeID derives the commit id from message, timestamp and snapshot.
// The canonical encoding uses Unix seconds and sorted snapshot lines so
// identical inputs hash identically on every machine.
func computeID(message string, t time.Time, snapshot map[string]blob.Hash) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "commit %s\n", message)
	fmt.Fprintf(&buf, "time %d\n", t.Unix())

	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&buf, "file %s %s\n", name, snapshot[name])
	}

	sum := blake3.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

// newNode builds a commit node and assigns its id.
func newNode(parent, message string, t time.Time, snapshot map[string]blob.Hash) *Node {
	node := &Node{
		Parent:   parent,
		Message:  message,
		Time:     t,
		Snapshot: snapshot,
	}
	node.ID = computeID(message, t, snapshot)
	return node
}

// rootNode builds the root commit: no parent, epoch timestamp, empty
// snapshot.
func rootNode() *Node {
	return newNode("", rootMessage, time.Unix(0, 0).UTC(), make(map[string]blob.Hash))
}

// Tracks reports whether the commit's snapshot contains the file.
func (n *Node) Tracks(name string) bool {
	_, ok := n.Snapshot[name]
	return ok
}
