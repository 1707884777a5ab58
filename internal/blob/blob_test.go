package blob

import (
	"bytes"
	"errors"
	"testing"
)

func TestSum(t *testing.T) {
	data := []byte("hello world")
	hash1 := Sum("a.txt", data)
	hash2 := Sum("a.txt", data)

	if hash1 != hash2 {
		t.Error("Same name and data should produce same hash")
	}

	if hash1 == Sum("b.txt", data) {
		t.Error("Different names should produce different hashes")
	}

	if hash1 == Sum("a.txt", []byte("hello world!")) {
		t.Error("Different data should produce different hashes")
	}

	if hash1.IsZero() {
		t.Error("A computed hash is never the zero absence marker")
	}
	if !(Hash{}).IsZero() {
		t.Error("IsZero should report true for the zero hash")
	}
}

func TestParseHash(t *testing.T) {
	h := Sum("a.txt", []byte("content"))

	parsed, err := ParseHash(h.String())
	if err != nil {
		t.Fatalf("ParseHash failed: %v", err)
	}
	if parsed != h {
		t.Error("ParseHash should round-trip String")
	}

	if _, err := ParseHash("abcd"); err == nil {
		t.Error("ParseHash should reject short input")
	}
	if _, err := ParseHash("zz"); err == nil {
		t.Error("ParseHash should reject non-hex input")
	}
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()
	data := []byte("test data")
	want := Sum("f.txt", data)

	has, err := store.Has(want)
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if has {
		t.Error("Empty store should not have any data")
	}

	if _, err := store.Get(want); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on missing hash should return ErrNotFound, got %v", err)
	}

	hash, err := store.Put("f.txt", data)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if hash != want {
		t.Errorf("Put returned %s, want %s", hash, want)
	}

	retrieved, err := store.Get(hash)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(data, retrieved) {
		t.Error("Retrieved data should match original")
	}

	// Idempotent: same content stored twice, one object.
	again, err := store.Put("f.txt", data)
	if err != nil {
		t.Fatalf("Second Put failed: %v", err)
	}
	if again != hash {
		t.Error("Re-storing identical content should return the same hash")
	}
	if store.Len() != 1 {
		t.Errorf("Store holds %d objects, want 1", store.Len())
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	data := []byte("file store data")
	hash, err := store.Put("notes.txt", data)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	retrieved, err := store.Get(hash)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(data, retrieved) {
		t.Error("Retrieved data should match original")
	}

	again, err := store.Put("notes.txt", data)
	if err != nil {
		t.Fatalf("Second Put failed: %v", err)
	}
	if again != hash {
		t.Error("Re-storing identical content should return the same hash")
	}

	if _, err := store.Get(Sum("missing.txt", nil)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on missing hash should return ErrNotFound, got %v", err)
	}

	// Reopen the store: objects are durable, not cache-resident.
	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore reopen failed: %v", err)
	}
	retrieved, err = reopened.Get(hash)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if !bytes.Equal(data, retrieved) {
		t.Error("Reopened store should return the same data")
	}

	has, err := reopened.Has(hash)
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !has {
		t.Error("Reopened store should report stored hash")
	}
}

func TestCanonicalPayloadRoundTrip(t *testing.T) {
	data := []byte("payload with \x00 byte and newline\n")
	canon := canonical("weird name.txt", data)

	got, err := payload(canon)
	if err != nil {
		t.Fatalf("payload failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("payload should recover the original bytes")
	}
}
