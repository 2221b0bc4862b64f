package codec

import (
	"fmt"
	"iter"
	"math/bits"
	"slices"

	"github.com/holiman/uint256"
)

// Bitmap stores member v as bit v, counting from the MSB of byte 0.
type Bitmap struct{}

var _ Codec = Bitmap{}

func (Bitmap) EstimateSize(values []uint256.Int) int {
	if len(values) == 0 {
		return SizeUnknown
	}
	return BitmapBytes(&values[len(values)-1])
}

func (c Bitmap) Encode(values []uint256.Int) ([]byte, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	size := c.EstimateSize(values)
	if uint64(size) > MaxBitmapBytes {
		return nil, fmt.Errorf("%w: %d bytes needed", ErrCapacityExceeded, size)
	}

	data := make([]byte, size)
	for i := range values {
		// every value fits: values are sorted and the largest passed the size check
		v := values[i].Uint64()
		data[v>>3] |= 0x80 >> (v & 7)
	}
	return data, nil
}

func (c Bitmap) Decode(data []byte) ([]uint256.Int, error) {
	return slices.Collect(c.Values(data)), nil
}

// Values yields the members of a bitmap in ascending order. The sequence may
// be ranged over any number of times.
func (Bitmap) Values(data []byte) iter.Seq[uint256.Int] {
	return func(yield func(uint256.Int) bool) {
		for i, b := range data {
			for b != 0 {
				// next set bit from the left
				clz := bits.LeadingZeros8(b)
				if !yield(*uint256.NewInt(uint64(i)<<3 + uint64(clz))) {
					return
				}
				b &^= 0x80 >> clz
			}
		}
	}
}
