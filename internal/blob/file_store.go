package blob

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/zstd"
)

// cacheSize bounds the number of decoded payloads kept in memory.
const cacheSize = 256

// FileStore implements Store on the file system. Objects live under a
// two-level directory layout (first two hex characters as the directory)
// and hold the zstd-compressed canonical encoding of the blob.
type FileStore struct {
	root  string
	cache *lru.Cache[Hash, []byte]
}

// NewFileStore creates a file-backed blob store rooted at the given directory.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create blob store directory: %w", err)
	}
	cache, err := lru.New[Hash, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create blob cache: %w", err)
	}
	return &FileStore{root: root, cache: cache}, nil
}

// path returns the object file path for a hash, e.g. ab/cdef1234...
func (f *FileStore) path(hash Hash) string {
	hexStr := hex.EncodeToString(hash[:])
	return filepath.Join(f.root, hexStr[:2], hexStr[2:])
}

// Put implements Store.Put.
func (f *FileStore) Put(name string, data []byte) (Hash, error) {
	canon := canonical(name, data)
	hash := Hash(sum256(canon))

	path := f.path(hash)
	if _, err := os.Stat(path); err == nil {
		return hash, nil // already stored, content-addressed
	}

	encoded, err := encodeZstd(canon)
	if err != nil {
		return Hash{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Hash{}, fmt.Errorf("create object directory: %w", err)
	}

	// Write to a temporary file first, then rename, so a partial write
	// never surfaces as a stored object.
	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return Hash{}, fmt.Errorf("create temp object: %w", err)
	}

	_, writeErr := file.Write(encoded)
	closeErr := file.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return Hash{}, fmt.Errorf("write object: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return Hash{}, fmt.Errorf("close object: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return Hash{}, fmt.Errorf("rename object: %w", err)
	}

	return hash, nil
}

// Get implements Store.Get.
func (f *FileStore) Get(hash Hash) ([]byte, error) {
	if data, ok := f.cache.Get(hash); ok {
		result := make([]byte, len(data))
		copy(result, data)
		return result, nil
	}

	encoded, err := os.ReadFile(f.path(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
		}
		return nil, fmt.Errorf("read object: %w", err)
	}

	canon, err := decodeZstd(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode object %s: %w", hash, err)
	}
	if Hash(sum256(canon)) != hash {
		return nil, fmt.Errorf("corrupted object: hash mismatch for %s", hash)
	}

	data, err := payload(canon)
	if err != nil {
		return nil, fmt.Errorf("decode object %s: %w", hash, err)
	}
	f.cache.Add(hash, data)

	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Has implements Store.Has.
func (f *FileStore) Has(hash Hash) (bool, error) {
	if f.cache.Contains(hash) {
		return true, nil
	}
	if _, err := os.Stat(f.path(hash)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat object: %w", err)
	}
	return true, nil
}

func encodeZstd(canon []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := enc.Write(canon); err != nil {
		return nil, fmt.Errorf("zstd write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("zstd close: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeZstd(encoded []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	canon, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("read zstd payload: %w", err)
	}
	return canon, nil
}
