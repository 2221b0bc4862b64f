package tokentesting

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/holiman/uint256"
)

// TestContext carries the logger and a deterministic RNG shared by the
// package tests.
type TestContext struct {
	Log  logger.Logger
	Rand *rand.Rand
	T    *testing.T
}

type TestConfig struct {
	// We seed the RNG from Seed. It is normal to force it to some fixed value
	// so that the generated data is the same from run to run.
	Seed            uint64
	TestLabelPrefix string
	LogLevel        string // defaults to INFO
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	level := cfg.LogLevel
	if level == "" {
		level = "INFO"
	}
	logger.New(level)
	t.Cleanup(logger.OnExit)

	return TestContext{
		T:    t,
		Log:  logger.Sugar.WithServiceName(cfg.TestLabelPrefix),
		Rand: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// RandomUintN returns a uniformly random integer of at most n bits.
func (c *TestContext) RandomUintN(n int) uint256.Int {
	return RandomUintN(c.Rand, n)
}

// RandomSet returns up to count distinct random ids of at most n bits, sorted
// ascending. Collisions are dropped, so small widths yield fewer ids.
func (c *TestContext) RandomSet(n int, count int) []uint256.Int {
	return RandomSet(c.Rand, n, count)
}

func RandomUintN(rng *rand.Rand, n int) uint256.Int {
	var x uint256.Int
	for i := range x {
		x[i] = rng.Uint64()
	}
	if n >= 256 {
		return x
	}
	return *x.Rsh(&x, uint(256-n))
}

func RandomSet(rng *rand.Rand, n int, count int) []uint256.Int {
	seen := make(map[uint256.Int]struct{}, count)
	for i := 0; i < count; i++ {
		seen[RandomUintN(rng, n)] = struct{}{}
	}
	out := make([]uint256.Int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	SortIDs(out)
	return out
}

// SortIDs sorts ids ascending in place.
func SortIDs(ids []uint256.Int) {
	slices.SortFunc(ids, func(a, b uint256.Int) int { return a.Cmp(&b) })
}

// IDs is a convenience for literal sets in tests.
func IDs(values ...uint64) []uint256.Int {
	out := make([]uint256.Int, len(values))
	for i, v := range values {
		out[i].SetUint64(v)
	}
	return out
}
