package codec

/*

# Compact encodings for sorted token id sets

This package packs a strictly ascending sequence of 256 bit token ids into as
few bytes as it can. It mirrors the `bitstream` style:

- explicit byte layouts
- a closed set of strategies, each tagged with a one byte ID
- a burden of knowledge on the caller: strategies assume sorted, unique,
  non-empty input, the Adaptive front end checks it

## Wire format

	+---------+-----------------------------+
	| id (u8) | strategy specific payload   |
	+---------+-----------------------------+

The id values are part of the durable format. Unassigned ids are reserved for
future strategies (variable width and delta encodings); Decode rejects them
with ErrUnknownCodec.

## Bitmap (id 1)

A dense bit vector. Bit v (MSB of byte 0 is bit 0) is set iff v is a member.

	{1, 2, 4, 5, 7, 16} => 01101101 00000000 10000000

## PackedFixed (id 8)

A one byte header holding width-1 followed by every value as a width bit
field, MSB first, ascending.

	+-------------+--------+--------+-----+---------+
	| width-1 (u8)| v0     | v1     | ... | padding |
	+-------------+--------+--------+-----+---------+

There is no count. Decoders stop when the stream cannot hold another field,
or when a field is not greater than its predecessor, which can only be zero
padding.

## Selection

Adaptive estimates every strategy's output and encodes with the smallest,
ties going to the lowest id. Estimates are exact for both built in
strategies.

*/
