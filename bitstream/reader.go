package bitstream

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Reader reads arbitrary width fields from a byte slice, MSB first.
type Reader struct {
	data   []byte
	cursor int // in bits
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Cursor returns the number of bits consumed so far.
func (r *Reader) Cursor() int { return r.cursor }

// Remaining returns the number of unread bits, including any trailing padding.
func (r *Reader) Remaining() int { return len(r.data)*8 - r.cursor }

// Read returns the next n bits as an unsigned integer and advances the cursor.
// The first bit read is the most significant. On error the cursor does not
// move.
func (r *Reader) Read(n int) (uint256.Int, error) {
	var out uint256.Int

	if err := checkWidth(n); err != nil {
		return out, err
	}
	if n > r.Remaining() {
		return out, fmt.Errorf("%w: want %d bits, have %d", ErrBitstreamOverrun, n, r.Remaining())
	}

	// byte holding the first bit to read
	i := r.cursor >> 3

	// bits left unread in that byte if the cursor is not byte aligned
	partialBits := (8 - r.cursor&7) & 7

	r.cursor += n

	if partialBits > 0 {
		out[0] = uint64(r.data[i] & byte(1<<partialBits-1))
		i++
		n -= partialBits

		if n < 0 {
			// the whole field sat inside the partial byte
			out[0] >>= uint(-n)
			n = 0
		}
	}

	for n >= 8 {
		out.Lsh(&out, 8)
		out[0] |= uint64(r.data[i])
		i++
		n -= 8
	}

	if n > 0 {
		out.Lsh(&out, uint(n))
		out[0] |= uint64(r.data[i] >> (8 - n))
	}

	return out, nil
}
