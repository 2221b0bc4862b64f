package codec

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
)

type registration struct {
	id    ID
	codec Codec
}

// builtins lists the strategies in registry (ascending id) order. Ties in
// Adaptive selection go to the earlier entry.
func builtins() []registration {
	return []registration{
		{IDBitmap, Bitmap{}},
		{IDPackedFixed, PackedFixed{}},
	}
}

// Lookup returns the built in strategy registered under id.
func Lookup(id ID) (Codec, bool) {
	for _, r := range builtins() {
		if r.id == id {
			return r.codec, true
		}
	}
	return nil, false
}

// Adaptive encodes with whichever registered strategy yields the smallest
// output, prefixing the strategy id. The zero value has no strategies and
// fails every Encode with ErrNoCodecAvailable.
type Adaptive struct {
	codecs []registration
}

var _ Codec = (*Adaptive)(nil)

func NewAdaptive() *Adaptive {
	return &Adaptive{codecs: builtins()}
}

func (a *Adaptive) lookup(id ID) (Codec, bool) {
	for _, r := range a.codecs {
		if r.id == id {
			return r.codec, true
		}
	}
	return nil, false
}

// EstimateSize returns IDBytes plus the smallest strategy estimate. It is a
// planning figure, not a promise about Encode's output.
func (a *Adaptive) EstimateSize(values []uint256.Int) int {
	best := SizeUnknown
	for _, r := range a.codecs {
		size := r.codec.EstimateSize(values)
		if size <= 0 {
			continue
		}
		if best == SizeUnknown || size < best {
			best = size
		}
	}
	if best == SizeUnknown || best == math.MaxInt {
		return best
	}
	return IDBytes + best
}

// Encode requires values to be non-empty and strictly ascending.
func (a *Adaptive) Encode(values []uint256.Int) ([]byte, error) {
	id, encoded, err := a.EncodeID(values)
	if err != nil {
		return nil, err
	}

	out := make([]byte, IDBytes+len(encoded))
	out[0] = byte(id)
	copy(out[IDBytes:], encoded)
	return out, nil
}

// EncodeID selects a strategy and returns its id with the untagged payload.
func (a *Adaptive) EncodeID(values []uint256.Int) (ID, []byte, error) {
	if err := CheckSorted(values); err != nil {
		return 0, nil, err
	}

	var (
		best    Codec
		bestID  ID
		encoded []byte
		minSize int
		found   bool
	)

	for _, r := range a.codecs {
		size := r.codec.EstimateSize(values)

		if size <= 0 {
			// no estimate, encode to learn the exact size
			trial, err := r.codec.Encode(values)
			if err != nil {
				return 0, nil, fmt.Errorf("%s: %w", r.id, err)
			}
			if !found || len(trial) < minSize {
				best, bestID, encoded, minSize, found = r.codec, r.id, trial, len(trial), true
			}
			continue
		}

		if !found || size < minSize {
			best, bestID, encoded, minSize, found = r.codec, r.id, nil, size, true
		}
	}

	if !found {
		return 0, nil, ErrNoCodecAvailable
	}

	if encoded == nil {
		var err error
		if encoded, err = best.Encode(values); err != nil {
			return 0, nil, fmt.Errorf("%s: %w", bestID, err)
		}
	}
	return bestID, encoded, nil
}

func (a *Adaptive) Decode(data []byte) ([]uint256.Int, error) {
	if len(data) < IDBytes {
		return nil, ErrEmptyInput
	}

	id := ID(data[0])
	c, ok := a.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, data[0])
	}

	values, err := c.Decode(data[IDBytes:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return values, nil
}
