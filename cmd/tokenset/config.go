package main

import (
	"errors"
	"fmt"
	"hash"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

const (
	hashKeccak256 = "keccak256"
	hashBlake3    = "blake3"

	formatJSON = "json"
	formatCBOR = "cbor"
)

var (
	errUnknownHash   = errors.New("unknown hash")
	errUnknownFormat = errors.New("unknown proof format")
)

// Config holds the settings shared by every command. Values come from the
// defaults, then the optional config file, then flags.
type Config struct {
	// LogLevel is passed to the logger. Default: INFO
	LogLevel string `yaml:"log_level"`

	// Hash is keccak256 or blake3. Only keccak256 roots verify on chain.
	// Default: keccak256
	Hash string `yaml:"hash"`

	// Format is the proof encoding, json or cbor. Default: json
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "INFO",
		Hash:     hashKeccak256,
		Format:   formatJSON,
	}
}

// LoadConfig reads path over the defaults. Keys missing from the file keep
// their default.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return config, config.Validate()
}

func (c *Config) Validate() error {
	switch c.Hash {
	case hashKeccak256, hashBlake3:
	default:
		return fmt.Errorf("%w: %q", errUnknownHash, c.Hash)
	}
	switch c.Format {
	case formatJSON, formatCBOR:
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, c.Format)
	}
	return nil
}

// NewHasher returns nil for keccak256, which selects the tokenset default.
func (c *Config) NewHasher() func() hash.Hash {
	if c.Hash == hashBlake3 {
		return func() hash.Hash { return blake3.New() }
	}
	return nil
}

// Hasher returns nil for keccak256, which tokenset.VerifyProof treats as
// Keccak-256.
func (c *Config) Hasher() hash.Hash {
	if newHasher := c.NewHasher(); newHasher != nil {
		return newHasher()
	}
	return nil
}

// configFromContext loads the file named by --config and applies any flags
// set on the command line.
func configFromContext(ctx *cli.Context) (*Config, error) {
	config, err := LoadConfig(ctx.String(configFlag.Name))
	if err != nil {
		return nil, err
	}
	if ctx.IsSet(logLevelFlag.Name) {
		config.LogLevel = ctx.String(logLevelFlag.Name)
	}
	if ctx.IsSet(hashFlag.Name) {
		config.Hash = ctx.String(hashFlag.Name)
	}
	if ctx.IsSet(formatFlag.Name) {
		config.Format = ctx.String(formatFlag.Name)
	}
	return config, config.Validate()
}
