package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	value, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", value)

	// Set overwrites unconditionally.
	require.NoError(t, kv.Set(ctx, "k", "v2"))
	value, _, _ = kv.Get(ctx, "k")
	assert.Equal(t, "v2", value)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	require.NoError(t, kv.Set(ctx, "k", "v"))
	require.NoError(t, kv.Delete(ctx, "k"))

	_, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is not an error.
	require.NoError(t, kv.Delete(ctx, "k"))
}
