package merkle

import (
	"fmt"
	"slices"
)

// GetMultiProof collects the proof nodes and flags needed to rebuild the root
// of tree from the leaves at indices.
//
// Indices are proven in descending order. Working from a queue seeded with
// them, each step pops node j and pairs it with its sibling: if the sibling is
// the next queued node both are in hand and the flag is true, otherwise the
// sibling's hash is appended to the proof and the flag is false. The parent of
// j is queued in either case. The walk ends when the root is reached.
//
// For example, with leaves 3, 4, 5, 6 of a 7 node tree and indices [5, 4, 6]:
//
//	0            pop 6, sibling 5 queued   -> flag true,  queue [4, 2]
//	1     2      pop 4, sibling 3 missing  -> flag false, proof [3], queue [2, 1]
//	3 4   5 6    pop 2, sibling 1 queued   -> flag true,  queue [0]
//
// Requesting no indices yields a proof holding only the root.
func GetMultiProof(tree [][HashBytes]byte, indices []int) (MultiProof, error) {
	if len(tree) == 0 {
		return MultiProof{}, ErrEmptyTree
	}

	for _, i := range indices {
		if !isLeafNode(len(tree), i) {
			return MultiProof{}, fmt.Errorf("%w: %d", ErrNotALeaf, i)
		}
	}

	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	slices.Reverse(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return MultiProof{}, fmt.Errorf("%w: %d", ErrDuplicateIndex, sorted[i])
		}
	}

	queue := slices.Clone(sorted)
	var proof [][HashBytes]byte
	var proofFlags []bool

	for len(queue) > 0 && queue[0] > 0 {
		j := queue[0]
		queue = queue[1:]

		s := sibling(j)
		p := parent(j)

		if len(queue) > 0 && s == queue[0] {
			proofFlags = append(proofFlags, true)
			queue = queue[1:]
		} else {
			proofFlags = append(proofFlags, false)
			proof = append(proof, tree[s])
		}
		queue = append(queue, p)
	}

	if len(indices) == 0 {
		proof = append(proof, tree[0])
	}

	leaves := make([][HashBytes]byte, len(sorted))
	for i, j := range sorted {
		leaves[i] = tree[j]
	}

	return MultiProof{
		Leaves:     leaves,
		Proof:      proof,
		ProofFlags: proofFlags,
	}, nil
}
