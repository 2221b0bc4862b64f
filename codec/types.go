package codec

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// ID tags a strategy on the wire.
type ID uint8

const (
	IDBitmap      ID = 1
	IDPackedFixed ID = 8
)

// IDBytes is the size of the strategy tag prefixed by Adaptive.
const IDBytes = 1

// SizeUnknown is returned by EstimateSize when a strategy cannot estimate its
// output. Adaptive falls back to a trial encoding for such strategies.
const SizeUnknown = -1

func (id ID) String() string {
	switch id {
	case IDBitmap:
		return "bitmap"
	case IDPackedFixed:
		return "packed-fixed"
	default:
		return fmt.Sprintf("codec(%d)", uint8(id))
	}
}

// Codec converts a sorted token id sequence to and from bytes.
//
// Encode and EstimateSize MUST only be given non-empty, strictly ascending
// sequences. Implementations are stateless and deterministic.
type Codec interface {
	EstimateSize(values []uint256.Int) int
	Encode(values []uint256.Int) ([]byte, error)
	Decode(data []byte) ([]uint256.Int, error)
}

var (
	ErrUnknownCodec     = errors.New("codec: unknown codec id")
	ErrCapacityExceeded = errors.New("codec: bitmap exceeds maximum size")
	ErrNoCodecAvailable = errors.New("codec: no codec available")
	ErrEmptyInput       = errors.New("codec: empty input")
	ErrUnsortedInput    = errors.New("codec: values must be strictly ascending")
)

// CheckSorted returns ErrEmptyInput or ErrUnsortedInput unless values is a
// non-empty strictly ascending sequence.
func CheckSorted(values []uint256.Int) error {
	if len(values) == 0 {
		return ErrEmptyInput
	}
	for i := 1; i < len(values); i++ {
		if !values[i-1].Lt(&values[i]) {
			return fmt.Errorf("%w: index %d", ErrUnsortedInput, i)
		}
	}
	return nil
}
