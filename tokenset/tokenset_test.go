package tokenset

import (
	"hash"
	"sync"
	"testing"

	"github.com/collectionswap/fummpel/codec"
	"github.com/collectionswap/fummpel/keccak"
	"github.com/collectionswap/fummpel/merkle"
	"github.com/collectionswap/fummpel/tokentesting"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func newTestSet(t *testing.T, ids ...uint64) *TokenSet {
	t.Helper()
	require.NoError(t, Init())

	tc := tokentesting.NewTestContext(t, tokentesting.TestConfig{
		TestLabelPrefix: "tokenset", LogLevel: "DEBUG",
	})
	return New(tokentesting.IDs(ids...), WithLogger(tc.Log))
}

func TestNewSortsAndDeduplicates(t *testing.T) {
	s := New(tokentesting.IDs(5, 3, 9, 3, 5, 1))

	assert.Equal(t, tokentesting.IDs(1, 3, 5, 9), s.Tokens())
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Contains(uint256.NewInt(9)))
	assert.False(t, s.Contains(uint256.NewInt(4)))
}

func TestTokensReturnsACopy(t *testing.T) {
	s := New(tokentesting.IDs(1, 2))
	ids := s.Tokens()
	ids[0].SetUint64(100)
	assert.Equal(t, tokentesting.IDs(1, 2), s.Tokens())
}

func TestEncodeDecodePowersOfTwo(t *testing.T) {
	var values []uint64
	for i := uint64(1); i < 1000000; i *= 2 {
		values = append(values, i)
	}
	original := newTestSet(t, values...)

	encoded, err := original.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, encoded[:HeaderBytes])

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, tokentesting.IDs(values...), decoded.Tokens())
	assert.Equal(t, original.Tokens(), decoded.Tokens())

	want, err := original.Root()
	require.NoError(t, err)
	got, err := decoded.Root()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEncodeLayout(t *testing.T) {
	tests := []struct {
		name string
		ids  []uint64
		want []byte
	}{
		{
			// bits 1 and 3 of a one byte bitmap
			name: "bitmap",
			ids:  []uint64{3, 1},
			want: []byte{0, 0, byte(codec.IDBitmap), 0b0101_0000},
		},
		{
			// two 8 bit fields beat a 32 byte bitmap
			name: "packed",
			ids:  []uint64{1, 255},
			want: []byte{0, 0, byte(codec.IDPackedFixed), 7, 1, 255},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tokentesting.IDs(tt.ids...))
			got, err := s.Encode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// cached
			again, err := s.Encode()
			require.NoError(t, err)
			assert.Same(t, &got[0], &again[0])
		})
	}
}

func TestEncodeEmpty(t *testing.T) {
	_, err := New(nil).Encode()
	assert.ErrorIs(t, err, ErrEmptySet)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte{0})
	assert.ErrorIs(t, err, ErrHeaderTooShort)

	_, err = Decode([]byte{0, 0})
	assert.ErrorIs(t, err, codec.ErrEmptyInput)

	_, err = Decode([]byte{0, 0, 2, 1})
	assert.ErrorIs(t, err, codec.ErrUnknownCodec)
}

func TestEncodeDecodeRandom(t *testing.T) {
	tc := tokentesting.NewTestContext(t, tokentesting.TestConfig{
		Seed: 11, TestLabelPrefix: "tokenset",
	})

	for _, n := range []int{1, 8, 16, 64, 200, 256} {
		ids := tc.RandomSet(n, 300)
		s := New(ids)

		encoded, err := s.Encode()
		require.NoError(t, err)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, ids, decoded.Tokens(), "width %d", n)
	}
}

func TestRootAndProof(t *testing.T) {
	s := newTestSet(t, 1, 100, 10000)

	rootHex, err := s.RootHex()
	require.NoError(t, err)
	assert.Equal(t, "0xe98123f0f46b0f0acf496990e348fe3e75c4f8de52ddd677099b9c57ee9a0c04", rootHex)

	_, err = s.Proof(tokentesting.IDs(1, 2, 3))
	assert.ErrorIs(t, err, merkle.ErrLeafNotFound)

	p, err := s.Proof(tokentesting.IDs(1, 100, 1))
	require.NoError(t, err)
	assert.Equal(t, tokentesting.IDs(100, 1), p.Leaves)
	assert.Equal(t, []string{"0x774c8f9d88cf32e87532b50ffa26bddd6f8e25fc698ef8a420cf51e8a6b8a43d"}, p.Proof)
	assert.Equal(t, []bool{false, true}, p.ProofFlags)

	ok, err := s.Verify(p)
	require.NoError(t, err)
	assert.True(t, ok)

	// a verifier holding only the root
	root, err := s.Root()
	require.NoError(t, err)
	ok, err = VerifyProof(nil, root, p)
	require.NoError(t, err)
	assert.True(t, ok)

	// the same proof does not verify against another set
	other := newTestSet(t, 1, 100, 10001)
	ok, err = other.Verify(p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProofEverySubset(t *testing.T) {
	ids := []uint64{0, 7, 8, 255, 256, 1 << 40}
	s := newTestSet(t, ids...)

	for mask := 0; mask < 1<<len(ids); mask++ {
		var subset []uint64
		for i := range ids {
			if mask&(1<<i) != 0 {
				subset = append(subset, ids[i])
			}
		}

		p, err := s.Proof(tokentesting.IDs(subset...))
		require.NoError(t, err)
		ok, err := s.Verify(p)
		require.NoError(t, err)
		require.True(t, ok, "mask %b", mask)
	}
}

func TestEmptySetHasNoRoot(t *testing.T) {
	require.NoError(t, Init())
	_, err := New(nil).Root()
	assert.ErrorIs(t, err, ErrEmptySet)
}

func TestVerifyRejectsBadDigest(t *testing.T) {
	s := newTestSet(t, 1, 2, 3)
	p, err := s.Proof(tokentesting.IDs(2))
	require.NoError(t, err)

	p.Proof[0] = "0x1234"
	_, err = s.Verify(p)
	assert.ErrorIs(t, err, ErrBadProofEncoding)
}

func TestWithHasher(t *testing.T) {
	newBlake3 := func() hash.Hash { return blake3.New() }

	ids := tokentesting.IDs(1, 2, 3, 4)
	s := New(ids, WithHasher(newBlake3))
	k := newTestSet(t, 1, 2, 3, 4)

	root, err := s.Root()
	require.NoError(t, err)
	kroot, err := k.Root()
	require.NoError(t, err)
	assert.NotEqual(t, kroot, root)

	p, err := s.Proof(tokentesting.IDs(2, 4))
	require.NoError(t, err)
	ok, err := VerifyProof(blake3.New(), root, p)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyProof(keccak.New(), root, p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConcurrentRoot(t *testing.T) {
	s := newTestSet(t, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	var wg sync.WaitGroup
	roots := make([][merkle.HashBytes]byte, 8)
	for i := range roots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			root, err := s.Root()
			assert.NoError(t, err)
			roots[i] = root
		}()
	}
	wg.Wait()

	for i := 1; i < len(roots); i++ {
		assert.Equal(t, roots[0], roots[i])
	}
}
