package merkle

import "errors"

// HashBytes is the fixed width of leaf values, leaf hashes and interior nodes.
const HashBytes = 32

// MultiProof proves membership of several leaves at once.
//
// Leaves are listed in the order a verifier consumes them: descending tree
// index. GetMultiProof fills Leaves with leaf hashes, Tree.MultiProof with the
// original values.
type MultiProof struct {
	Leaves     [][HashBytes]byte
	Proof      [][HashBytes]byte
	ProofFlags []bool
}

var (
	ErrEmptyTree      = errors.New("merkle: expected a non-zero number of leaves")
	ErrDuplicateValue = errors.New("merkle: duplicate leaf value")
	ErrNotALeaf       = errors.New("merkle: index is not a leaf")
	ErrDuplicateIndex = errors.New("merkle: cannot prove duplicated index")
	ErrLeafNotFound   = errors.New("merkle: leaf is not in tree")
	ErrTreeMismatch   = errors.New("merkle: tree does not contain the expected value")
	ErrMalformedProof = errors.New("merkle: wrong number of proofs / flags")
	ErrHashSize       = errors.New("merkle: hasher digest is not 32 bytes")
)
