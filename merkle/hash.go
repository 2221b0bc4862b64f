package merkle

import (
	"bytes"
	"fmt"
	"hash"
)

// CheckHasher returns ErrHashSize unless hasher produces HashBytes digests.
// Sum into a [HashBytes]byte silently truncates or zero pads any other size.
func CheckHasher(hasher hash.Hash) error {
	if hasher.Size() != HashBytes {
		return fmt.Errorf("%w: %d bytes", ErrHashSize, hasher.Size())
	}
	return nil
}

// LeafHash computes:
//
//	H( H(value) )
//
// A leaf hash is never the single hash of a 64 byte interior node preimage.
func LeafHash(hasher hash.Hash, value []byte) [HashBytes]byte {
	var out [HashBytes]byte

	hasher.Reset()
	_, _ = hasher.Write(value)
	inner := hasher.Sum(out[:0])

	hasher.Reset()
	_, _ = hasher.Write(inner)
	hasher.Sum(out[:0])
	return out
}

// HashPair computes:
//
//	H( min(a,b) || max(a,b) )
//
// The result does not depend on which child is on the left.
func HashPair(hasher hash.Hash, a, b [HashBytes]byte) [HashBytes]byte {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}

	hasher.Reset()
	_, _ = hasher.Write(a[:])
	_, _ = hasher.Write(b[:])

	var out [HashBytes]byte
	hasher.Sum(out[:0])
	return out
}
