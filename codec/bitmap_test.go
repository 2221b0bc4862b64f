package codec

import (
	"testing"

	"github.com/collectionswap/fummpel/tokentesting"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitmapPacksSmallSetIntoThreeBytes(t *testing.T) {
	values := tokentesting.IDs(1, 2, 4, 5, 7, 16)
	c := Bitmap{}

	assert.Equal(t, 3, c.EstimateSize(values))

	data, err := c.Encode(values)
	require.NoError(t, err)
	require.Equal(t, []byte{0b01101101, 0b00000000, 0b10000000}, data)

	got, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestBitmapRoundTrip1To24Bits(t *testing.T) {
	tc := tokentesting.NewTestContext(t, tokentesting.TestConfig{
		Seed: 3, TestLabelPrefix: "bitmap",
	})

	for _, n := range []int{1, 2, 3, 5, 8, 12, 15, 18, 21, 24} {
		values := tc.RandomSet(n, 1<<min(n-1, 12))
		c := Bitmap{}

		data, err := c.Encode(values)
		require.NoError(t, err)
		assert.Len(t, data, c.EstimateSize(values))

		got, err := c.Decode(data)
		require.NoError(t, err)
		require.Equal(t, values, got, "width %d", n)
	}
}

func TestBitmapValuesIsRestartable(t *testing.T) {
	data := []byte{0b10000001, 0, 0b00010000}
	c := Bitmap{}

	var first []uint64
	for v := range c.Values(data) {
		first = append(first, v.Uint64())
	}
	assert.Equal(t, []uint64{0, 7, 19}, first)

	// stop early, then range again from the start
	for v := range c.Values(data) {
		assert.Equal(t, uint64(0), v.Uint64())
		break
	}
	var second []uint64
	for v := range c.Values(data) {
		second = append(second, v.Uint64())
	}
	assert.Equal(t, first, second)
}

func TestBitmapCapacityExceeded(t *testing.T) {
	c := Bitmap{}

	// 2^35 needs 2^32+1 bytes
	big := new(uint256.Int).Lsh(uint256.NewInt(1), 35)
	_, err := c.Encode([]uint256.Int{*big})
	require.ErrorIs(t, err, ErrCapacityExceeded)

	huge := new(uint256.Int).SetAllOne()
	_, err = c.Encode([]uint256.Int{*uint256.NewInt(1), *huge})
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestBitmapRejectsEmpty(t *testing.T) {
	_, err := Bitmap{}.Encode(nil)
	require.ErrorIs(t, err, ErrEmptyInput)
	assert.Equal(t, SizeUnknown, Bitmap{}.EstimateSize(nil))
}
