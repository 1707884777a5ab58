// Package blob provides content-addressed storage for file versions.
//
// A blob's address is the BLAKE3-256 hash of a canonical encoding that
// binds the logical file name to the payload, so identical bytes stored
// under two different names occupy two addresses. Stores are append-only:
// there is no removal operation, and re-storing identical content is a
// no-op that returns the same address.
package blob

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"lukechampine.com/blake3"
)

// Hash is the BLAKE3-256 address of a stored blob.
type Hash [32]byte

// String returns the hexadecimal representation of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the zero hash. The zero hash never addresses
// stored content; callers use it as an absence marker.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// MarshalText implements encoding.TextMarshaler so hashes serialize as hex.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash decodes a 64-character hex string into a Hash.
func ParseHash(s string) (Hash, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("decode hash %q: %w", s, err)
	}
	if len(raw) != len(Hash{}) {
		return Hash{}, fmt.Errorf("invalid hash length: %d", len(raw))
	}
	var h Hash
	copy(h[:], raw)
	return h, nil
}

// ErrNotFound is returned by Get and reported by stores when no blob
// exists for the requested hash.
var ErrNotFound = errors.New("blob not found")

// Sum computes the address of a named payload.
func Sum(name string, data []byte) Hash {
	return Hash(sum256(canonical(name, data)))
}

func sum256(b []byte) [32]byte {
	return blake3.Sum256(b)
}

// canonical returns the bytes that are hashed and stored: a header binding
// the logical name and payload length, a NUL separator, then the payload.
func canonical(name string, data []byte) []byte {
	header := fmt.Sprintf("blob %s %d\x00", name, len(data))
	out := make([]byte, 0, len(header)+len(data))
	out = append(out, header...)
	out = append(out, data...)
	return out
}

// payload extracts the payload from canonical bytes.
func payload(canon []byte) ([]byte, error) {
	sep := bytes.IndexByte(canon, 0x00)
	if sep < 0 {
		return nil, errors.New("invalid blob: missing NUL after header")
	}
	header := canon[:sep]
	content := canon[sep+1:]

	space := bytes.LastIndexByte(header, ' ')
	if space < 0 || !bytes.HasPrefix(header, []byte("blob ")) {
		return nil, fmt.Errorf("invalid blob header %q", header)
	}
	size, err := strconv.Atoi(string(header[space+1:]))
	if err != nil {
		return nil, fmt.Errorf("invalid blob header %q: %w", header, err)
	}
	if size > len(content) {
		return nil, fmt.Errorf("truncated blob: header size %d > %d bytes read", size, len(content))
	}
	return content[:size], nil
}

// Store is append-only content-addressed storage for named payloads.
type Store interface {
	// Put stores data under the address derived from (name, data) and
	// returns that address. Storing identical content twice is a no-op.
	Put(name string, data []byte) (Hash, error)

	// Get returns the payload stored at hash, or ErrNotFound.
	Get(hash Hash) ([]byte, error)

	// Has reports whether a blob exists for the given hash.
	Has(hash Hash) (bool, error)
}
