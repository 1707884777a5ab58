package worktree

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// exercise runs the shared Tree contract against an implementation.
func exercise(t *testing.T, tree Tree) {
	t.Helper()

	if tree.Exists("a.txt") {
		t.Error("Empty tree should not report files")
	}
	if _, err := tree.Read("a.txt"); err == nil {
		t.Error("Read of a missing file should fail")
	}

	if err := tree.Write("b.txt", []byte("bee")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := tree.Write("a.txt", []byte("one")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := tree.Read("a.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(data, []byte("one")) {
		t.Errorf("Read returned %q, want %q", data, "one")
	}

	// Overwrite is create-or-overwrite.
	if err := tree.Write("a.txt", []byte("two")); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	data, _ = tree.Read("a.txt")
	if !bytes.Equal(data, []byte("two")) {
		t.Errorf("Read after overwrite returned %q, want %q", data, "two")
	}

	names, err := tree.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"a.txt", "b.txt"}) {
		t.Errorf("List returned %v, want sorted [a.txt b.txt]", names)
	}

	if err := tree.Remove("a.txt"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if tree.Exists("a.txt") {
		t.Error("Removed file should not exist")
	}
	if err := tree.Remove("a.txt"); err == nil {
		t.Error("Removing a missing file should fail")
	}
}

func TestMem(t *testing.T) {
	exercise(t, NewMem())
}

func TestDir(t *testing.T) {
	exercise(t, NewDir(t.TempDir()))
}

func TestDirSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".grove"), 0755); err != nil {
		t.Fatal(err)
	}
	tree := NewDir(root)
	if err := tree.Write("a.txt", []byte("one")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	names, err := tree.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"a.txt"}) {
		t.Errorf("List should skip directories, got %v", names)
	}
	if tree.Exists(".grove") {
		t.Error("Exists should be false for a directory")
	}
}
