package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	_, err := store.Get(ctx, "names", "snapshot")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "names", "snapshot", []byte("payload")))

	got, err := store.Get(ctx, "names", "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	// Namespaces are independent.
	_, err = store.Get(ctx, "other", "snapshot")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx, "names", "snapshot"))
	_, err = store.Get(ctx, "names", "snapshot")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Close())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	value := []byte("payload")
	require.NoError(t, store.Set(ctx, "names", "snapshot", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "names", "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got, "stored value must not alias the caller's slice")

	got[0] = 'y'
	again, err := store.Get(ctx, "names", "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), again)
}
