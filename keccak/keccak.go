// Package keccak provides the Ethereum flavoured Keccak-256 hash (the
// pre-standard padding, not FIPS-202 SHA3-256) used for leaves and interior
// nodes of token id merkle trees.
//
// Hashing is gated behind Init, which self tests the engine once. Callers that
// build or verify trees must call Init first; it is idempotent and cheap to
// repeat.
package keccak

import (
	"bytes"
	"encoding/hex"
	"errors"
	"hash"
	"sync"
	"sync/atomic"

	"golang.org/x/crypto/sha3"
)

// Size is the digest size in bytes.
const Size = 32

var (
	ErrNotInitialized = errors.New("keccak: Init has not completed")
	ErrSelfTest       = errors.New("keccak: self test failed")
)

// keccak256("")
const emptyDigestHex = "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"

var (
	initOnce sync.Once
	initErr  error
	ready    atomic.Bool
)

// Init checks the hash engine against a known answer. It runs the check at
// most once; later calls return the first result.
func Init() error {
	initOnce.Do(func() {
		want, _ := hex.DecodeString(emptyDigestHex)
		got := sha3.NewLegacyKeccak256().Sum(nil)
		if !bytes.Equal(want, got) {
			initErr = ErrSelfTest
			return
		}
		ready.Store(true)
	})
	return initErr
}

// Ready reports whether Init completed successfully.
func Ready() bool { return ready.Load() }

// CheckReady returns ErrNotInitialized until Init has succeeded.
func CheckReady() error {
	if !ready.Load() {
		return ErrNotInitialized
	}
	return nil
}

// New returns a fresh Keccak-256 hasher.
func New() hash.Hash {
	return sha3.NewLegacyKeccak256()
}

// Sum256 returns keccak256(data).
func Sum256(data []byte) [Size]byte {
	var out [Size]byte
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(data)
	h.Sum(out[:0])
	return out
}
