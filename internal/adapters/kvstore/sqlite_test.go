package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(":memory:", zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	_, err = store.Get(ctx, "names", "snapshot")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "names", "snapshot", []byte("v1")))

	got, err := store.Get(ctx, "names", "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// Set replaces the previous value.
	require.NoError(t, store.Set(ctx, "names", "snapshot", []byte("v2")))
	got, err = store.Get(ctx, "names", "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, store.Delete(ctx, "names", "snapshot"))
	_, err = store.Get(ctx, "names", "snapshot")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "names", "snapshot", []byte("payload")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "names", "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}
