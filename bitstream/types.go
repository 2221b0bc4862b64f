package bitstream

import "errors"

const (
	// MaxWidth is the widest field a single Read or Write can move.
	MaxWidth = 256

	// DefaultWriterBytes is the initial backing size of a Writer.
	DefaultWriterBytes = 8
)

var (
	ErrInvalidWidth     = errors.New("bitstream: width must be in [1, 256]")
	ErrValueOutOfRange  = errors.New("bitstream: value does not fit in width")
	ErrBitstreamOverrun = errors.New("bitstream: read past end of stream")
)

func checkWidth(n int) error {
	if n < 1 || n > MaxWidth {
		return ErrInvalidWidth
	}
	return nil
}
