package codec

import (
	"math"

	"github.com/collectionswap/fummpel/bitstream"
	"github.com/holiman/uint256"
)

// MaxBitmapBytes bounds a bitmap so that every bit index fits in
// native integer arithmetic.
const MaxBitmapBytes uint64 = 1 << 32

// BitmapBytes returns ceil((largest+1)/8), the bitmap size needed to hold
// largest.
//
// The result saturates at math.MaxInt for values whose bitmap could never be
// allocated.
func BitmapBytes(largest *uint256.Int) int {
	// ceil((x+1)/8) == floor(x/8)+1, which cannot overflow
	var size uint256.Int
	size.Rsh(largest, 3)
	if !size.IsUint64() || size.Uint64() >= uint64(math.MaxInt) {
		return math.MaxInt
	}
	return int(size.Uint64()) + 1
}

// PackedWidth returns the field width for a sorted sequence whose largest
// value is largest. Zero still occupies one bit.
func PackedWidth(largest *uint256.Int) int {
	return max(bitstream.BitWidth(largest), 1)
}

// PackedBytes returns 1 + ceil(count*width/8).
func PackedBytes(count int, width int) int {
	return PackedHeaderBytes + bitstream.BytesForBits(count*width)
}
