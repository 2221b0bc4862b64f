package codec

import (
	"errors"
	"fmt"

	"github.com/collectionswap/fummpel/bitstream"
	"github.com/holiman/uint256"
)

const (
	// PackedHeaderBytes is the width-1 header in front of the packed fields.
	PackedHeaderBytes = 1

	packedHeaderBits = 8
)

// PackedFixed stores every value as a fixed width field, the width being that
// of the largest value.
type PackedFixed struct{}

var _ Codec = PackedFixed{}

func (PackedFixed) EstimateSize(values []uint256.Int) int {
	if len(values) == 0 {
		return SizeUnknown
	}
	width := PackedWidth(&values[len(values)-1])
	return PackedBytes(len(values), width)
}

func (c PackedFixed) Encode(values []uint256.Int) ([]byte, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	width := PackedWidth(&values[len(values)-1])
	w := bitstream.NewWriterSize(c.EstimateSize(values))

	if err := w.WriteUint64(packedHeaderBits, uint64(width-1)); err != nil {
		return nil, err
	}
	for i := range values {
		if err := w.Write(width, &values[i]); err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
	}
	return w.Bytes(), nil
}

func (PackedFixed) Decode(data []byte) ([]uint256.Int, error) {
	r := bitstream.NewReader(data)

	header, err := r.Read(packedHeaderBits)
	if err != nil {
		return nil, fmt.Errorf("packed header: %w", err)
	}
	width := int(header.Uint64()) + 1

	var values []uint256.Int
	for {
		v, err := r.Read(width)
		if errors.Is(err, bitstream.ErrBitstreamOverrun) {
			// end of stream
			break
		}
		if err != nil {
			return nil, err
		}

		// the encoding is strictly ascending, a non-increasing field can only
		// be the zero padding of the final byte
		if len(values) > 0 && !values[len(values)-1].Lt(&v) {
			break
		}
		values = append(values, v)
	}
	return values, nil
}
