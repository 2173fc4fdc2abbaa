package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/deliveryops-api/internal/infrastructure/sqlite"
)

func TestKV_SetGetOverwrite(t *testing.T) {
	ctx := context.Background()
	kv, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	_, found, err := kv.Get(ctx, "products")
	require.NoError(t, err)
	assert.False(t, found, "clave ausente")

	require.NoError(t, kv.Set(ctx, "products", `[{"id":"1"}]`))
	require.NoError(t, kv.Set(ctx, "products", `[{"id":"2"}]`))

	v, found, err := kv.Get(ctx, "products")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"2"}]`, v)
}

func TestKV_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.db")

	kv, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "drivers", `[]`))
	require.NoError(t, kv.Close())

	kv, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer kv.Close()

	v, found, err := kv.Get(ctx, "drivers")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, v)
}
