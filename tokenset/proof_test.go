package tokenset

import (
	"encoding/json"
	"testing"

	"github.com/collectionswap/fummpel/merkle"
	"github.com/collectionswap/fummpel/tokentesting"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProofJSON(t *testing.T) {
	s := newTestSet(t, 1, 100, 10000)
	p, err := s.Proof(tokentesting.IDs(1, 100))
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"leaves": [
			"0x0000000000000000000000000000000000000000000000000000000000000064",
			"0x0000000000000000000000000000000000000000000000000000000000000001"
		],
		"proof": ["0x774c8f9d88cf32e87532b50ffa26bddd6f8e25fc698ef8a420cf51e8a6b8a43d"],
		"proofFlags": [false, true]
	}`, string(data))

	var got Proof
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, p, got)

	ok, err := s.Verify(got)
	require.NoError(t, err)
	assert.True(t, ok)
}

// The leaves, proof and flags of an OpenZeppelin StandardMerkleTree multiproof
// for a single bytes32 column.
func TestProofJSONOpenZeppelin(t *testing.T) {
	require.NoError(t, Init())

	var p Proof
	require.NoError(t, json.Unmarshal([]byte(`{
		"leaves": [
			"0x0000000000000000000000000000000000000000000000000000000000002710",
			"0x0000000000000000000000000000000000000000000000000000000005f5e100",
			"0x0000000000000000000000000000000000000000000000000000000000000001"
		],
		"proof": [
			"0x77f592bc17b20433aeae743b94966faa037e16a70ad7c488cf44b90a1e8bbacc",
			"0x6018aa26c1d237bf0d550845d50afe01326f1fce28dbefe46b3f91b71454f3f0"
		],
		"proofFlags": [false, true, false, true]
	}`), &p))

	root := [merkle.HashBytes]byte(mustDecode(t, "0x3e6c4b615e1c29dd6c02090cd26edcfc1f3ff44f1a3e2493c97ff45df19fdf41"))
	ok, err := VerifyProof(nil, root, p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProofJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"wrong shape", `{"leaves": 5}`},
		{"short leaf", `{"leaves": ["0x01"], "proof": [], "proofFlags": []}`},
		{"no prefix", `{"leaves": [], "proof": ["774c8f9d88cf32e87532b50ffa26bddd6f8e25fc698ef8a420cf51e8a6b8a43d"], "proofFlags": []}`},
		{"long digest", `{"leaves": [], "proof": ["0x774c8f9d88cf32e87532b50ffa26bddd6f8e25fc698ef8a420cf51e8a6b8a43d00"], "proofFlags": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Proof
			assert.ErrorIs(t, json.Unmarshal([]byte(tt.data), &p), ErrBadProofEncoding)
		})
	}
}

func TestProofCBOR(t *testing.T) {
	s := newTestSet(t, 3, 5, 8, 13, 21, 34)
	p, err := s.Proof(tokentesting.IDs(5, 21, 34))
	require.NoError(t, err)

	data, err := cbor.Marshal(p)
	require.NoError(t, err)

	// deterministic
	again, err := p.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, data, again)

	var got Proof
	require.NoError(t, cbor.Unmarshal(data, &got))
	assert.Equal(t, p, got)

	ok, err := s.Verify(got)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProofCBORErrors(t *testing.T) {
	short, err := cbor.Marshal(proofCBOR{Leaves: [][]byte{{1}}})
	require.NoError(t, err)

	var p Proof
	assert.ErrorIs(t, cbor.Unmarshal(short, &p), ErrBadProofEncoding)
	assert.ErrorIs(t, p.UnmarshalCBOR([]byte{0xff}), ErrBadProofEncoding)

	_, err = Proof{Proof: []string{"0x00"}}.MarshalCBOR()
	assert.ErrorIs(t, err, ErrBadProofEncoding)
}

func mustDecode(t *testing.T, s string) []byte {
	t.Helper()
	h, err := decodeHash(s)
	require.NoError(t, err)
	return h[:]
}
