package qerrors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorKeepsFirstError(t *testing.T) {
	var c Collector
	require.NoError(t, c.Err())

	c.Set(nil)
	assert.NoError(t, c.Err())

	c.Set(ErrEmptyAlignment)
	c.Set(ErrNonPositiveLen)
	assert.Equal(t, ErrEmptyAlignment, c.Err())
}

func TestInvariantReturnsError(t *testing.T) {
	err := Invariant("node %d missing", 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node 42 missing")
}

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "context"))
	assert.Error(t, Wrap(ErrEmptyAlignment, "context"))
}
