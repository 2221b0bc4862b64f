package merkle

import (
	"encoding/binary"
	"hash"
	"testing"

	"github.com/collectionswap/fummpel/keccak"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

func newHasher(t *testing.T) hash.Hash {
	t.Helper()
	require.NoError(t, keccak.Init())
	return keccak.New()
}

// value returns v as a 32 byte big endian word.
func value(v uint64) [HashBytes]byte {
	var out [HashBytes]byte
	binary.BigEndian.PutUint64(out[HashBytes-8:], v)
	return out
}

func values(vs ...uint64) [][HashBytes]byte {
	out := make([][HashBytes]byte, len(vs))
	for i, v := range vs {
		out[i] = value(v)
	}
	return out
}

func hexHash(s string) [HashBytes]byte {
	return [HashBytes]byte(hexutil.MustDecode(s))
}

func hexHashes(ss ...string) [][HashBytes]byte {
	out := make([][HashBytes]byte, len(ss))
	for i, s := range ss {
		out[i] = hexHash(s)
	}
	return out
}
