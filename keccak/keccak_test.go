package keccak

import (
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	require.NoError(t, Init())
	require.NoError(t, Init())
	assert.True(t, Ready())
	assert.NoError(t, CheckReady())
}

func TestSum256KnownAnswers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", emptyDigestHex},
		{"abc", "abc", "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sum256([]byte(tt.in))
			assert.Equal(t, tt.want, hex.EncodeToString(got[:]))

			h := New()
			h.Write([]byte(tt.in))
			assert.Equal(t, tt.want, hex.EncodeToString(h.Sum(nil)))
		})
	}
}

// resetInit returns the package to its state before the first Init.
func resetInit() {
	initOnce = sync.Once{}
	initErr = nil
	ready.Store(false)
}

func TestCheckReadyBeforeInit(t *testing.T) {
	resetInit()
	t.Cleanup(func() { _ = Init() })

	assert.False(t, Ready())
	assert.ErrorIs(t, CheckReady(), ErrNotInitialized)

	require.NoError(t, Init())
	assert.True(t, Ready())
	assert.NoError(t, CheckReady())
}
