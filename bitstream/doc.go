package bitstream

/*

# Bit granular streams over byte slices

This package provides the reader and writer used by the token id codecs to
pack integers of arbitrary width (1 to 256 bits) into the smallest number of
bytes.

It follows the same "explicit layout" style as the merkle and codec packages:

- small, composable types
- an explicit bit numbering convention
- sentinel errors for every caller mistake

## Bit numbering

Bits are addressed MSB first within each byte, byte 0 first. A stream
holding the bits

	1011 1011 1100 1010

read as widths 3, 5, 8 yields 0b101, 0b11011, 0b11001010.

Writers always emit the value's low n bits, most significant first, and pad
the final byte with zero bits.

## Writing from the right

Write fills the trailing, byte-partial region first (the value's least
significant bits), then whole bytes from right to left. Each step only needs
the value's low 8 bits and a shift, so a 256 bit field costs at most 33 byte
stores and no per-bit work.

*/
