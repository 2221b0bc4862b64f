package tokenset

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash"

	"github.com/collectionswap/fummpel/keccak"
	"github.com/collectionswap/fummpel/merkle"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fxamacker/cbor/v2"
	"github.com/holiman/uint256"
)

var ErrBadProofEncoding = errors.New("tokenset: proof is not correctly encoded")

// Proof is the exchange form of a multiproof. Leaves are in verification
// order, Proof holds 0x prefixed 32 byte hex digests.
//
// As JSON the leaves are 0x prefixed 32 byte hex words, the form accepted by
// OpenZeppelin's multiProofVerify. As CBOR the fields are integer keyed and
// every leaf and digest is a 32 byte string.
type Proof struct {
	Leaves     []uint256.Int
	Proof      []string
	ProofFlags []bool
}

type proofJSON struct {
	Leaves     []string `json:"leaves"`
	Proof      []string `json:"proof"`
	ProofFlags []bool   `json:"proofFlags"`
}

type proofCBOR struct {
	Leaves     [][]byte `cbor:"1,keyasint"`
	Proof      [][]byte `cbor:"2,keyasint"`
	ProofFlags []bool   `cbor:"3,keyasint"`
}

var (
	proofEncMode cbor.EncMode
	proofDecMode cbor.DecMode
)

func init() {
	var err error

	// Core Deterministic Encoding: the same proof always has the same bytes
	proofEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("tokenset: CBOR encoder initialization failed: " + err.Error())
	}
	proofDecMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("tokenset: CBOR decoder initialization failed: " + err.Error())
	}
}

func newProof(mp merkle.MultiProof) Proof {
	p := Proof{
		Leaves:     make([]uint256.Int, len(mp.Leaves)),
		Proof:      make([]string, len(mp.Proof)),
		ProofFlags: mp.ProofFlags,
	}
	for i := range mp.Leaves {
		p.Leaves[i].SetBytes32(mp.Leaves[i][:])
	}
	for i := range mp.Proof {
		p.Proof[i] = hexutil.Encode(mp.Proof[i][:])
	}
	return p
}

// MultiProof converts p to the form the merkle package verifies.
func (p Proof) MultiProof() (merkle.MultiProof, error) {
	mp := merkle.MultiProof{
		Leaves:     make([][merkle.HashBytes]byte, len(p.Leaves)),
		Proof:      make([][merkle.HashBytes]byte, len(p.Proof)),
		ProofFlags: p.ProofFlags,
	}
	for i := range p.Leaves {
		mp.Leaves[i] = p.Leaves[i].Bytes32()
	}
	for i, s := range p.Proof {
		h, err := decodeHash(s)
		if err != nil {
			return merkle.MultiProof{}, fmt.Errorf("proof %d: %w", i, err)
		}
		mp.Proof[i] = h
	}
	return mp, nil
}

// VerifyProof checks p against root without access to the set. A nil hasher
// selects Keccak-256, which requires Init.
func VerifyProof(hasher hash.Hash, root [merkle.HashBytes]byte, p Proof) (bool, error) {
	if hasher == nil {
		if err := keccak.CheckReady(); err != nil {
			return false, err
		}
		hasher = keccak.New()
	}
	if err := merkle.CheckHasher(hasher); err != nil {
		return false, err
	}

	mp, err := p.MultiProof()
	if err != nil {
		return false, err
	}
	return merkle.VerifyMultiProof(hasher, root, mp)
}

func (p Proof) MarshalJSON() ([]byte, error) {
	out := proofJSON{
		Leaves:     make([]string, len(p.Leaves)),
		Proof:      nonNil(p.Proof),
		ProofFlags: nonNil(p.ProofFlags),
	}
	for i := range p.Leaves {
		b := p.Leaves[i].Bytes32()
		out.Leaves[i] = hexutil.Encode(b[:])
	}
	return json.Marshal(out)
}

func (p *Proof) UnmarshalJSON(data []byte) error {
	var in proofJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrBadProofEncoding, err)
	}

	leaves := make([]uint256.Int, len(in.Leaves))
	for i, s := range in.Leaves {
		h, err := decodeHash(s)
		if err != nil {
			return fmt.Errorf("leaf %d: %w", i, err)
		}
		leaves[i].SetBytes32(h[:])
	}
	for i, s := range in.Proof {
		if _, err := decodeHash(s); err != nil {
			return fmt.Errorf("proof %d: %w", i, err)
		}
	}

	*p = Proof{Leaves: leaves, Proof: in.Proof, ProofFlags: in.ProofFlags}
	return nil
}

func (p Proof) MarshalCBOR() ([]byte, error) {
	mp, err := p.MultiProof()
	if err != nil {
		return nil, err
	}

	out := proofCBOR{
		Leaves:     make([][]byte, len(mp.Leaves)),
		Proof:      make([][]byte, len(mp.Proof)),
		ProofFlags: nonNil(mp.ProofFlags),
	}
	for i := range mp.Leaves {
		out.Leaves[i] = mp.Leaves[i][:]
	}
	for i := range mp.Proof {
		out.Proof[i] = mp.Proof[i][:]
	}
	return proofEncMode.Marshal(out)
}

func (p *Proof) UnmarshalCBOR(data []byte) error {
	var in proofCBOR
	if err := proofDecMode.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrBadProofEncoding, err)
	}

	out := Proof{
		Leaves:     make([]uint256.Int, len(in.Leaves)),
		Proof:      make([]string, len(in.Proof)),
		ProofFlags: in.ProofFlags,
	}
	for i, b := range in.Leaves {
		if len(b) != merkle.HashBytes {
			return fmt.Errorf("%w: leaf %d is %d bytes", ErrBadProofEncoding, i, len(b))
		}
		out.Leaves[i].SetBytes32(b)
	}
	for i, b := range in.Proof {
		if len(b) != merkle.HashBytes {
			return fmt.Errorf("%w: proof %d is %d bytes", ErrBadProofEncoding, i, len(b))
		}
		out.Proof[i] = hexutil.Encode(b)
	}

	*p = out
	return nil
}

func decodeHash(s string) ([merkle.HashBytes]byte, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return [merkle.HashBytes]byte{}, fmt.Errorf("%w: %v", ErrBadProofEncoding, err)
	}
	if len(b) != merkle.HashBytes {
		return [merkle.HashBytes]byte{}, fmt.Errorf("%w: %d bytes, want %d", ErrBadProofEncoding, len(b), merkle.HashBytes)
	}
	return [merkle.HashBytes]byte(b), nil
}

// nonNil keeps empty lists as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
