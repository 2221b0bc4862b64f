package merkle

import (
	"fmt"
	"hash"
)

// ProcessMultiProof rebuilds a root from leaf hashes, proof nodes and flags.
//
// Hashes are drawn from two FIFO queues: the leaf hashes followed by every
// hash computed so far, and the proof nodes. Each flag produces one hash
// from a, the next leaf or computed hash, and b, which comes from the same
// queue when the flag is true and from the proof queue otherwise.
//
// The draw order is that of OpenZeppelin's MerkleProof.processMultiProof and
// must not change: proofs are exchanged with independently built verifiers.
func ProcessMultiProof(
	hasher hash.Hash, leafHashes [][HashBytes]byte, proof [][HashBytes]byte, proofFlags []bool,
) ([HashBytes]byte, error) {

	if err := CheckHasher(hasher); err != nil {
		return [HashBytes]byte{}, err
	}

	leavesLen := len(leafHashes)
	proofLen := len(proof)
	totalHashes := len(proofFlags)

	if leavesLen+proofLen-1 != totalHashes {
		return [HashBytes]byte{}, fmt.Errorf(
			"%w: %d leaves + %d proof - 1 != %d flags", ErrMalformedProof, leavesLen, proofLen, totalHashes)
	}

	if totalHashes == 0 {
		if leavesLen > 0 {
			return leafHashes[0], nil
		}
		return proof[0], nil
	}

	hashes := make([][HashBytes]byte, totalHashes)
	var leafPos, hashPos, proofPos int

	// next leaf, or the oldest computed hash not yet consumed
	nextHash := func(i int) ([HashBytes]byte, bool) {
		if leafPos < leavesLen {
			leafPos++
			return leafHashes[leafPos-1], true
		}
		if hashPos < i {
			hashPos++
			return hashes[hashPos-1], true
		}
		return [HashBytes]byte{}, false
	}

	for i := 0; i < totalHashes; i++ {
		a, ok := nextHash(i)
		if !ok {
			return [HashBytes]byte{}, fmt.Errorf("%w: flag %d has no hash to consume", ErrMalformedProof, i)
		}

		var b [HashBytes]byte
		if proofFlags[i] {
			if b, ok = nextHash(i); !ok {
				return [HashBytes]byte{}, fmt.Errorf("%w: flag %d has no hash to consume", ErrMalformedProof, i)
			}
		} else {
			if proofPos >= proofLen {
				return [HashBytes]byte{}, fmt.Errorf("%w: flag %d has no proof node to consume", ErrMalformedProof, i)
			}
			b = proof[proofPos]
			proofPos++
		}

		hashes[i] = HashPair(hasher, a, b)
	}

	return hashes[totalHashes-1], nil
}

// VerifyHashed returns true if leafHashes, proof and proofFlags rebuild root.
//
// An error is returned only for proofs whose shape is inconsistent; a well
// formed proof for the wrong root, or for altered leaves, returns false.
func VerifyHashed(
	hasher hash.Hash, root [HashBytes]byte, leafHashes [][HashBytes]byte, proof [][HashBytes]byte, proofFlags []bool,
) (bool, error) {
	got, err := ProcessMultiProof(hasher, leafHashes, proof, proofFlags)
	if err != nil {
		return false, err
	}
	return got == root, nil
}

// Verify is VerifyHashed for leaf values, which are hashed with LeafHash.
func Verify(
	hasher hash.Hash, root [HashBytes]byte, leaves [][HashBytes]byte, proof [][HashBytes]byte, proofFlags []bool,
) (bool, error) {
	if err := CheckHasher(hasher); err != nil {
		return false, err
	}

	leafHashes := make([][HashBytes]byte, len(leaves))
	for i := range leaves {
		leafHashes[i] = LeafHash(hasher, leaves[i][:])
	}
	return VerifyHashed(hasher, root, leafHashes, proof, proofFlags)
}

// VerifyMultiProof verifies a proof returned by Tree.MultiProof.
func VerifyMultiProof(hasher hash.Hash, root [HashBytes]byte, p MultiProof) (bool, error) {
	return Verify(hasher, root, p.Leaves, p.Proof, p.ProofFlags)
}
