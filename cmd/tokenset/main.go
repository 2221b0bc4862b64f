// Command tokenset encodes sets of token ids, computes their merkle roots, and
// produces and checks membership multiproofs.
//
//	tokenset encode ids.txt
//	tokenset prove ids.txt subset.txt > proof.json
//	tokenset verify 0x3e6c...df41 proof.json
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/collectionswap/fummpel/tokenset"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/urfave/cli/v2"
)

const (
	serviceName = "tokenset"
	envKey      = "env"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML file supplying defaults for the flags below",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "DEBUG, INFO, WARN or ERROR",
		Value: "INFO",
	}
	hashFlag = &cli.StringFlag{
		Name:  "hash",
		Usage: "tree hash, keccak256 or blake3",
		Value: hashKeccak256,
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "proof encoding, json or cbor",
		Value: formatJSON,
	}
	outFlag = &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "write binary output to this file instead of hex to stdout",
	}
)

// env is what every command needs once flags and config are resolved.
type env struct {
	config *Config
	log    logger.Logger
	opts   []tokenset.Option
	in     io.Reader
	out    io.Writer
}

func newApp() *cli.App {
	return &cli.App{
		Name:  serviceName,
		Usage: "compact token id sets with merkle multiproofs",
		Flags: []cli.Flag{configFlag, logLevelFlag, hashFlag, formatFlag},
		Commands: []*cli.Command{
			encodeCommand,
			decodeCommand,
			rootCommand,
			proveCommand,
			verifyCommand,
		},
		Before: setup,
		After: func(ctx *cli.Context) error {
			if _, ok := ctx.App.Metadata[envKey]; ok {
				logger.OnExit()
			}
			return nil
		},
	}
}

func setup(ctx *cli.Context) error {
	config, err := configFromContext(ctx)
	if err != nil {
		return err
	}

	logger.New(config.LogLevel)
	log := logger.Sugar.WithServiceName(serviceName)

	if err := tokenset.Init(); err != nil {
		return err
	}

	opts := []tokenset.Option{tokenset.WithLogger(log)}
	if newHasher := config.NewHasher(); newHasher != nil {
		opts = append(opts, tokenset.WithHasher(newHasher))
	}

	if ctx.App.Metadata == nil {
		ctx.App.Metadata = map[string]any{}
	}
	ctx.App.Metadata[envKey] = &env{
		config: config,
		log:    log,
		opts:   opts,
		in:     ctx.App.Reader,
		out:    ctx.App.Writer,
	}
	log.Debugf("hash %s, proof format %s", config.Hash, config.Format)
	return nil
}

func envFrom(ctx *cli.Context) *env {
	return ctx.App.Metadata[envKey].(*env)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
