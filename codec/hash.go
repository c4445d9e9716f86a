// Package codec converts access tokens to and from their stored form and
// derives token ids from raw secrets.
package codec

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// TokenLength is the size in bytes of a raw token secret.
const TokenLength = 32

// Hasher derives token ids from raw token secrets. With a key it computes a
// keyed BLAKE2b-256; without one it computes SHA-256, which is what the
// legacy rows were written with.
type Hasher struct {
	key []byte
}

// NewHasher returns a Hasher for the given key. An empty key is allowed.
func NewHasher(key []byte) (*Hasher, error) {
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("token hash key must be at most %d bytes, got %d", blake2b.Size, len(key))
	}
	return &Hasher{key: append([]byte(nil), key...)}, nil
}

// Hash returns the token id for raw.
func (h *Hasher) Hash(raw []byte) []byte {
	var m hash.Hash
	if len(h.key) == 0 {
		m = sha256.New()
	} else {
		// blake2b.New256 only fails for keys longer than blake2b.Size,
		// which NewHasher rejects.
		m, _ = blake2b.New256(h.key)
	}
	m.Write(raw)
	return m.Sum(nil)
}

// NewRawToken returns a fresh random token secret.
func NewRawToken() ([]byte, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return b, nil
}
