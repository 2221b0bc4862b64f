package merkle

import (
	"bytes"
	"fmt"
	"hash"
	"slices"
)

// Tree is an immutable merkle tree over distinct 32 byte values.
//
// Leaves are sorted by hash and stored from the end of the node array, the
// smallest leaf hash in the last slot. Two builders given the same values in
// any order produce the same root.
type Tree struct {
	// root at 0, leaves in the last len(values) slots
	nodes [][HashBytes]byte

	// values committed by the tree, in the order given to NewTree
	values [][HashBytes]byte

	// treeIndex[i] is the node index of the leaf for values[i]
	treeIndex []int

	// leaf hash -> index into values
	hashLookup map[[HashBytes]byte]int
}

// NewTree hashes and sorts the leaves and computes every interior node.
func NewTree(hasher hash.Hash, values [][HashBytes]byte) (*Tree, error) {
	if len(values) == 0 {
		return nil, ErrEmptyTree
	}
	if err := CheckHasher(hasher); err != nil {
		return nil, err
	}

	type hashedValue struct {
		valueIndex int
		hash       [HashBytes]byte
	}

	hashed := make([]hashedValue, len(values))
	hashLookup := make(map[[HashBytes]byte]int, len(values))

	for i := range values {
		h := LeafHash(hasher, values[i][:])
		if _, ok := hashLookup[h]; ok {
			return nil, fmt.Errorf("%w: %x", ErrDuplicateValue, values[i])
		}
		hashed[i] = hashedValue{valueIndex: i, hash: h}
		hashLookup[h] = i
	}

	slices.SortFunc(hashed, func(a, b hashedValue) int {
		return bytes.Compare(a.hash[:], b.hash[:])
	})

	leafCount := len(values)
	treeLen := TreeLen(leafCount)

	nodes := make([][HashBytes]byte, treeLen)
	treeIndex := make([]int, leafCount)

	for i, hv := range hashed {
		j := treeLen - 1 - i
		nodes[j] = hv.hash
		treeIndex[hv.valueIndex] = j
	}

	for i := treeLen - 1 - leafCount; i >= 0; i-- {
		nodes[i] = HashPair(hasher, nodes[left(i)], nodes[right(i)])
	}

	return &Tree{
		nodes:      nodes,
		values:     slices.Clone(values),
		treeIndex:  treeIndex,
		hashLookup: hashLookup,
	}, nil
}

// Root returns the node at index 0. For a single value tree this is the leaf
// hash itself.
func (t *Tree) Root() [HashBytes]byte {
	return t.nodes[0]
}

// Len returns the number of leaves.
func (t *Tree) Len() int {
	return len(t.values)
}

// Nodes returns a copy of the node array.
func (t *Tree) Nodes() [][HashBytes]byte {
	return slices.Clone(t.nodes)
}

// LeafLookup returns the index, in NewTree's input order, of value.
func (t *Tree) LeafLookup(hasher hash.Hash, value [HashBytes]byte) (int, error) {
	if err := CheckHasher(hasher); err != nil {
		return 0, err
	}
	h := LeafHash(hasher, value[:])
	i, ok := t.hashLookup[h]
	if !ok {
		return 0, fmt.Errorf("%w: %x", ErrLeafNotFound, value)
	}
	return i, nil
}

// MultiProof generates a multiproof for values. The returned Leaves are the
// original values, ordered for verification.
func (t *Tree) MultiProof(hasher hash.Hash, values [][HashBytes]byte) (MultiProof, error) {
	indices := make([]int, len(values))

	for i := range values {
		valueIndex, err := t.LeafLookup(hasher, values[i])
		if err != nil {
			return MultiProof{}, err
		}
		if err := t.validateValue(hasher, valueIndex); err != nil {
			return MultiProof{}, err
		}
		indices[i] = t.treeIndex[valueIndex]
	}

	proof, err := GetMultiProof(t.nodes, indices)
	if err != nil {
		return MultiProof{}, err
	}

	for i, h := range proof.Leaves {
		proof.Leaves[i] = t.values[t.hashLookup[h]]
	}
	return proof, nil
}

// validateValue recomputes the leaf hash for values[valueIndex] and checks it
// against the node the index points at.
func (t *Tree) validateValue(hasher hash.Hash, valueIndex int) error {
	if valueIndex < 0 || valueIndex >= len(t.values) {
		return fmt.Errorf("%w: value index %d out of range", ErrTreeMismatch, valueIndex)
	}
	j := t.treeIndex[valueIndex]
	if !isTreeNode(len(t.nodes), j) {
		return fmt.Errorf("%w: node index %d out of range", ErrTreeMismatch, j)
	}

	leaf := LeafHash(hasher, t.values[valueIndex][:])
	if leaf != t.nodes[j] {
		return fmt.Errorf("%w: %x", ErrTreeMismatch, t.values[valueIndex])
	}
	return nil
}
