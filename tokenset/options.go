package tokenset

import (
	"hash"

	"github.com/collectionswap/fummpel/keccak"
	"github.com/collectionswap/fummpel/merkle"
	"github.com/datatrails/go-datatrails-common/logger"
)

type Options struct {
	Log logger.Logger

	// NewHasher returns the hash used for leaves and interior nodes. nil
	// selects legacy Keccak-256, which requires Init.
	NewHasher func() hash.Hash
}

// Option is a generic option type. Implementations type assert to their
// options record and ignore options that do not apply to them.
type Option func(any)

func WithLogger(log logger.Logger) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.Log = log
		}
	}
}

// WithHasher replaces Keccak-256. The hash must produce 32 byte digests or
// hashing operations fail with merkle.ErrHashSize. Roots built with any other
// hash do not verify on chain.
func WithHasher(newHasher func() hash.Hash) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.NewHasher = newHasher
		}
	}
}

func newOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// hasher returns a fresh hasher, or keccak.ErrNotInitialized when the default
// is selected before Init. A custom hasher must produce 32 byte digests.
func (o Options) hasher() (hash.Hash, error) {
	if o.NewHasher != nil {
		h := o.NewHasher()
		if err := merkle.CheckHasher(h); err != nil {
			return nil, err
		}
		return h, nil
	}
	if err := keccak.CheckReady(); err != nil {
		return nil, err
	}
	return keccak.New(), nil
}

func (o Options) debugf(format string, args ...any) {
	if o.Log == nil {
		return
	}
	o.Log.Debugf(format, args...)
}
