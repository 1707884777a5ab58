package stage

import (
	"testing"

	"github.com/grovevcs/grove/internal/blob"
)

func TestStageAddition(t *testing.T) {
	store := blob.NewMemStore()
	ix := NewIndex()

	if !ix.IsEmpty() {
		t.Error("New index should be empty")
	}

	if err := ix.StageAddition(store, "a.txt", []byte("one")); err != nil {
		t.Fatalf("StageAddition failed: %v", err)
	}
	if ix.IsEmpty() {
		t.Error("Index with a pending addition should not be empty")
	}

	rec, ok := ix.Additions["a.txt"]
	if !ok {
		t.Fatal("Addition record missing")
	}
	if rec.Blob != blob.Sum("a.txt", []byte("one")) {
		t.Error("Record should hold the blob address of the staged content")
	}

	// Restaging the same name replaces the earlier record.
	if err := ix.StageAddition(store, "a.txt", []byte("two")); err != nil {
		t.Fatalf("StageAddition failed: %v", err)
	}
	if ix.Additions["a.txt"].Blob != blob.Sum("a.txt", []byte("two")) {
		t.Error("Restaging should replace the pending addition")
	}
	if len(ix.Additions) != 1 {
		t.Errorf("Index holds %d additions, want 1", len(ix.Additions))
	}
}

func TestUnstage(t *testing.T) {
	store := blob.NewMemStore()
	ix := NewIndex()

	if ix.UnstageAddition("a.txt") {
		t.Error("UnstageAddition should report false for a name never staged")
	}
	if ix.UnstageDeletion("a.txt") {
		t.Error("UnstageDeletion should report false for a name never staged")
	}

	if err := ix.StageAddition(store, "a.txt", []byte("one")); err != nil {
		t.Fatalf("StageAddition failed: %v", err)
	}
	ix.StageDeletion("b.txt")

	if !ix.UnstageAddition("a.txt") {
		t.Error("UnstageAddition should report true for a pending addition")
	}
	if !ix.UnstageDeletion("b.txt") {
		t.Error("UnstageDeletion should report true for a pending deletion")
	}
	if !ix.IsEmpty() {
		t.Error("Index should be empty after unstaging everything")
	}
}

func TestClearAndNames(t *testing.T) {
	store := blob.NewMemStore()
	ix := NewIndex()

	for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
		if err := ix.StageAddition(store, name, []byte(name)); err != nil {
			t.Fatalf("StageAddition failed: %v", err)
		}
	}
	ix.StageDeletion("z.txt")
	ix.StageDeletion("y.txt")

	add := ix.AdditionNames()
	if len(add) != 3 || add[0] != "a.txt" || add[1] != "b.txt" || add[2] != "c.txt" {
		t.Errorf("AdditionNames not sorted: %v", add)
	}
	del := ix.DeletionNames()
	if len(del) != 2 || del[0] != "y.txt" || del[1] != "z.txt" {
		t.Errorf("DeletionNames not sorted: %v", del)
	}

	ix.Clear()
	if !ix.IsEmpty() {
		t.Error("Clear should empty the index")
	}
}
