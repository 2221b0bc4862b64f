// Package tokenset represents a set of 256 bit token ids in two forms: a
// compact byte encoding for storage and transmission, and a merkle tree whose
// root commits to the set and whose multiproofs show that any subset belongs
// to it.
//
// A TokenSet is immutable. The encoding and the tree are computed on first use
// and kept for the lifetime of the set.
package tokenset

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/collectionswap/fummpel/codec"
	"github.com/collectionswap/fummpel/keccak"
	"github.com/collectionswap/fummpel/merkle"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// HeaderBytes is the reserved, currently zero, prefix of the encoded form.
const HeaderBytes = 2

var (
	ErrHeaderTooShort = errors.New("tokenset: encoded set is shorter than its header")
	ErrEmptySet       = errors.New("tokenset: set has no token ids")
)

// Init prepares the Keccak-256 engine. It must complete before a set using the
// default hasher can build a root, proof or verify one. Repeated calls are
// cheap.
func Init() error {
	return keccak.Init()
}

type TokenSet struct {
	opts Options

	// sorted ascending, no duplicates
	ids []uint256.Int

	mu      sync.Mutex
	encoded []byte
	tree    *merkle.Tree
}

// New returns the set of distinct ids. The order of ids does not matter.
func New(ids []uint256.Int, opts ...Option) *TokenSet {
	sorted := slices.Clone(ids)
	sortIDs(sorted)
	sorted = slices.Compact(sorted)

	return &TokenSet{
		opts: newOptions(opts...),
		ids:  sorted,
	}
}

// Decode reads a set from the form produced by Encode.
func Decode(data []byte, opts ...Option) (*TokenSet, error) {
	if len(data) < HeaderBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooShort, len(data))
	}

	ids, err := codec.NewAdaptive().Decode(data[HeaderBytes:])
	if err != nil {
		return nil, err
	}
	return New(ids, opts...), nil
}

// Encode returns the reserved header followed by the adaptive encoding of
// the ids. The result is computed once; callers must not modify it.
func (s *TokenSet) Encode() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encoded != nil {
		return s.encoded, nil
	}
	if len(s.ids) == 0 {
		return nil, ErrEmptySet
	}

	id, payload, err := codec.NewAdaptive().EncodeID(s.ids)
	if err != nil {
		return nil, err
	}

	encoded := make([]byte, HeaderBytes+codec.IDBytes+len(payload))
	encoded[HeaderBytes] = byte(id)
	copy(encoded[HeaderBytes+codec.IDBytes:], payload)

	s.opts.debugf("encoded %d ids with %s: %d bytes", len(s.ids), id, len(encoded))
	s.encoded = encoded
	return encoded, nil
}

// Tokens returns the ids in ascending order.
func (s *TokenSet) Tokens() []uint256.Int {
	return slices.Clone(s.ids)
}

func (s *TokenSet) Len() int {
	return len(s.ids)
}

func (s *TokenSet) Contains(id *uint256.Int) bool {
	_, found := slices.BinarySearchFunc(s.ids, id, func(a uint256.Int, b *uint256.Int) int {
		return a.Cmp(b)
	})
	return found
}

// Root returns the merkle root over the ids.
func (s *TokenSet) Root() ([merkle.HashBytes]byte, error) {
	tree, err := s.getTree()
	if err != nil {
		return [merkle.HashBytes]byte{}, err
	}
	return tree.Root(), nil
}

// RootHex returns the root as 0x prefixed hex.
func (s *TokenSet) RootHex() (string, error) {
	root, err := s.Root()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(root[:]), nil
}

// Proof returns a multiproof that every id in subset is a member. Repeated ids
// are proven once. If any id is not a member the error is
// merkle.ErrLeafNotFound.
func (s *TokenSet) Proof(subset []uint256.Int) (Proof, error) {
	tree, err := s.getTree()
	if err != nil {
		return Proof{}, err
	}
	hasher, err := s.opts.hasher()
	if err != nil {
		return Proof{}, err
	}

	seen := make(map[uint256.Int]struct{}, len(subset))
	values := make([][merkle.HashBytes]byte, 0, len(subset))
	for _, id := range subset {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		values = append(values, id.Bytes32())
	}

	mp, err := tree.MultiProof(hasher, values)
	if err != nil {
		return Proof{}, err
	}
	return newProof(mp), nil
}

// Verify checks p against the root of this set.
func (s *TokenSet) Verify(p Proof) (bool, error) {
	root, err := s.Root()
	if err != nil {
		return false, err
	}
	hasher, err := s.opts.hasher()
	if err != nil {
		return false, err
	}
	return VerifyProof(hasher, root, p)
}

func (s *TokenSet) getTree() (*merkle.Tree, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tree != nil {
		return s.tree, nil
	}
	if len(s.ids) == 0 {
		return nil, ErrEmptySet
	}

	hasher, err := s.opts.hasher()
	if err != nil {
		return nil, err
	}

	values := make([][merkle.HashBytes]byte, len(s.ids))
	for i := range s.ids {
		values[i] = s.ids[i].Bytes32()
	}

	start := time.Now()
	tree, err := merkle.NewTree(hasher, values)
	if err != nil {
		return nil, err
	}
	s.opts.debugf("built tree over %d ids in %s", len(values), time.Since(start))

	s.tree = tree
	return tree, nil
}

func sortIDs(ids []uint256.Int) {
	slices.SortFunc(ids, func(a, b uint256.Int) int { return a.Cmp(&b) })
}
