package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/collectionswap/fummpel/merkle"
	"github.com/collectionswap/fummpel/tokenset"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fxamacker/cbor/v2"
	"github.com/urfave/cli/v2"
)

var (
	errArgs         = errors.New("wrong number of arguments")
	errInvalidProof = errors.New("proof does not verify")
)

var (
	encodeCommand = &cli.Command{
		Name:      "encode",
		Usage:     "encode a set of token ids",
		ArgsUsage: "<id file | ->",
		Flags:     []cli.Flag{outFlag},
		Action:    encode,
		Description: `
Reads one decimal or 0x hex id per line and writes the compact encoding of the
set: two reserved bytes, the codec id, then the codec payload.`,
	}
	decodeCommand = &cli.Command{
		Name:      "decode",
		Usage:     "list the token ids of an encoded set",
		ArgsUsage: "<encoded file | 0x hex>",
		Action:    decode,
	}
	rootCommand = &cli.Command{
		Name:      "root",
		Usage:     "print the merkle root of a set of token ids",
		ArgsUsage: "<id file | ->",
		Action:    root,
	}
	proveCommand = &cli.Command{
		Name:      "prove",
		Usage:     "produce a multiproof that a subset belongs to a set",
		ArgsUsage: "<id file> <subset file>",
		Flags:     []cli.Flag{outFlag},
		Action:    prove,
	}
	verifyCommand = &cli.Command{
		Name:      "verify",
		Usage:     "check a multiproof against a root",
		ArgsUsage: "<root> <proof file>",
		Action:    verify,
	}
)

func loadSet(e *env, path string) (*tokenset.TokenSet, error) {
	ids, err := readIDFile(path, e.in)
	if err != nil {
		return nil, err
	}
	return tokenset.New(ids, e.opts...), nil
}

// emit writes data to --out when set, otherwise hex to stdout.
func emit(ctx *cli.Context, e *env, data []byte) error {
	if path := ctx.String(outFlag.Name); path != "" {
		return os.WriteFile(path, data, 0o644)
	}
	_, err := fmt.Fprintln(e.out, hexutil.Encode(data))
	return err
}

func encode(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("%w: expected an id file", errArgs)
	}
	e := envFrom(ctx)

	set, err := loadSet(e, ctx.Args().First())
	if err != nil {
		return err
	}
	encoded, err := set.Encode()
	if err != nil {
		return err
	}
	e.log.Infof("encoded %d ids in %d bytes", set.Len(), len(encoded))
	return emit(ctx, e, encoded)
}

func decode(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("%w: expected an encoded file or hex", errArgs)
	}
	e := envFrom(ctx)

	arg := ctx.Args().First()
	var data []byte
	var err error
	if _, statErr := os.Stat(arg); statErr != nil && hasHexPrefix(arg) {
		data, err = hexutil.Decode(arg)
	} else {
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return err
	}

	set, err := tokenset.Decode(data, e.opts...)
	if err != nil {
		return err
	}
	for _, id := range set.Tokens() {
		if _, err := fmt.Fprintln(e.out, id.Dec()); err != nil {
			return err
		}
	}
	return nil
}

func root(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("%w: expected an id file", errArgs)
	}
	e := envFrom(ctx)

	set, err := loadSet(e, ctx.Args().First())
	if err != nil {
		return err
	}
	rootHex, err := set.RootHex()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, rootHex)
	return err
}

func prove(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return fmt.Errorf("%w: expected an id file and a subset file", errArgs)
	}
	e := envFrom(ctx)

	set, err := loadSet(e, ctx.Args().Get(0))
	if err != nil {
		return err
	}
	subset, err := readIDFile(ctx.Args().Get(1), e.in)
	if err != nil {
		return err
	}

	proof, err := set.Proof(subset)
	if err != nil {
		return err
	}
	e.log.Infof("proved %d of %d ids with %d proof nodes", len(proof.Leaves), set.Len(), len(proof.Proof))

	if e.config.Format == formatCBOR {
		data, err := cbor.Marshal(proof)
		if err != nil {
			return err
		}
		return emit(ctx, e, data)
	}

	data, err := json.MarshalIndent(proof, "", "  ")
	if err != nil {
		return err
	}
	if path := ctx.String(outFlag.Name); path != "" {
		return os.WriteFile(path, data, 0o644)
	}
	_, err = fmt.Fprintln(e.out, string(data))
	return err
}

func verify(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return fmt.Errorf("%w: expected a root and a proof file", errArgs)
	}
	e := envFrom(ctx)

	rootBytes, err := hexutil.Decode(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("root: %w", err)
	}
	if len(rootBytes) != merkle.HashBytes {
		return fmt.Errorf("root: %d bytes, want %d", len(rootBytes), merkle.HashBytes)
	}

	data, err := os.ReadFile(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	var proof tokenset.Proof
	if e.config.Format == formatCBOR {
		// hex as written to stdout by prove, or the raw --out file
		if text := bytes.TrimSpace(data); hasHexPrefix(string(text)) {
			if data, err = hexutil.Decode(string(text)); err != nil {
				return err
			}
		}
		err = cbor.Unmarshal(data, &proof)
	} else {
		err = json.Unmarshal(data, &proof)
	}
	if err != nil {
		return err
	}

	ok, err := tokenset.VerifyProof(e.config.Hasher(), [merkle.HashBytes]byte(rootBytes), proof)
	if err != nil {
		return err
	}
	if !ok {
		return errInvalidProof
	}
	_, err = fmt.Fprintln(e.out, "valid")
	return err
}

func hasHexPrefix(s string) bool {
	return len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X")
}
