// Package storetest exercises any store.KV against the behaviour the
// checklist relies on.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/checklist/internal/store"
)

// Run checks absent keys, overwrites, key independence and Close.
// The store is closed when Run returns.
func Run(t *testing.T, kv store.KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "openChecklists")
	require.NoError(t, err)
	assert.False(t, ok, "fresh store must report absent keys")

	require.NoError(t, kv.Set(ctx, "openChecklists", `{"2024-01-05":[]}`))
	require.NoError(t, kv.Set(ctx, "currentDate", "2024-01-05"))
	require.NoError(t, kv.Set(ctx, "openChecklists", `{"2024-01-06":[]}`))

	v, ok, err := kv.Get(ctx, "openChecklists")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"2024-01-06":[]}`, v)

	v, ok, err = kv.Get(ctx, "currentDate")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-01-05", v)

	_, ok, err = kv.Get(ctx, "closedChecklists")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "closedChecklists", ""))
	v, ok, err = kv.Get(ctx, "closedChecklists")
	require.NoError(t, err)
	assert.True(t, ok, "empty values are still present")
	assert.Empty(t, v)

	require.NoError(t, kv.Close())
	err = kv.Set(ctx, "currentDate", "2024-01-07")
	assert.True(t, errors.Is(err, store.ErrClosed), "Set after Close: %v", err)
	_, _, err = kv.Get(ctx, "currentDate")
	assert.True(t, errors.Is(err, store.ErrClosed), "Get after Close: %v", err)
}
