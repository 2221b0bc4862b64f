package bitstream

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Writer appends arbitrary width fields to an owned, growable buffer.
//
// The buffer must not be shared between writers: Write ORs bits into place and
// relies on the unwritten region being zero.
type Writer struct {
	data       []byte
	lengthBits int
}

func NewWriter() *Writer {
	return NewWriterSize(DefaultWriterBytes)
}

// NewWriterSize returns a writer whose initial buffer holds size bytes.
func NewWriterSize(size int) *Writer {
	if size < 1 {
		size = DefaultWriterBytes
	}
	return &Writer{data: make([]byte, size)}
}

// Len returns the number of bits written.
func (w *Writer) Len() int { return w.lengthBits }

// Write appends the low n bits of v, most significant first.
func (w *Writer) Write(n int, v *uint256.Int) error {
	if err := checkWidth(n); err != nil {
		return err
	}
	if v.BitLen() > n {
		return fmt.Errorf("%w: %d bit value, width %d", ErrValueOutOfRange, v.BitLen(), n)
	}

	// byte index where the MSB of the field lands
	startByte := w.lengthBits >> 3
	w.lengthBits += n

	// last byte index written as a full byte (least significant); may be
	// startByte-1 when the field fits in the tail of a partial byte
	endFullByte := w.lengthBits>>3 - 1

	// last byte index touched
	endByte := BytesForBits(w.lengthBits) - 1

	// bit count of the trailing partial byte, 0 when byte aligned
	endPartialBits := w.lengthBits & 7

	if len(w.data) < endByte+1 {
		grown := make([]byte, (endByte+1)*2)
		copy(grown, w.data)
		w.data = grown
	}

	bits := *v

	if endPartialBits > 0 {
		lsb := byte(bits[0] & (1<<endPartialBits - 1))
		w.data[endByte] |= lsb << (8 - endPartialBits)
		bits.Rsh(&bits, uint(endPartialBits))
	}

	for i := endFullByte; i >= startByte; i-- {
		w.data[i] |= byte(bits[0])
		bits.Rsh(&bits, 8)
	}

	return nil
}

// WriteUint64 is Write for values that fit a machine word.
func (w *Writer) WriteUint64(n int, v uint64) error {
	return w.Write(n, uint256.NewInt(v))
}

// Bytes returns the written bits padded with zeros to the next byte boundary.
// The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.data[:BytesForBits(w.lengthBits)]
}

// Dump renders the whole backing buffer as space separated binary octets.
func (w *Writer) Dump() string {
	parts := make([]string, len(w.data))
	for i, b := range w.data {
		parts[i] = fmt.Sprintf("%08b", b)
	}
	return strings.Join(parts, " ")
}
