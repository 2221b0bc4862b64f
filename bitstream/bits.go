package bitstream

import "github.com/holiman/uint256"

// BitWidth returns the minimum number of bits needed to represent x. Zero has
// width 0.
//
// For all x >= 1: 2^(BitWidth(x)-1) <= x < 2^BitWidth(x)
func BitWidth(x *uint256.Int) int {
	return x.BitLen()
}

// BytesForBits returns ceil(nBits/8).
func BytesForBits(nBits int) int {
	return (nBits + 7) >> 3
}
