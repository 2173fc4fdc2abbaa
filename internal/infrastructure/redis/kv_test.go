package redis_test

import (
	"context"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rediskv "github.com/jhoicas/deliveryops-api/internal/infrastructure/redis"
	"github.com/jhoicas/deliveryops-api/pkg/config"
)

// Requiere un servidor real: TEST_REDIS_ADDR=localhost:6379.
func openKV(t *testing.T) *rediskv.KV {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	kv, err := rediskv.Open(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKV_MissingKeyIsNotFound(t *testing.T) {
	kv := openKV(t)

	v, found, err := kv.Get(context.Background(), "deliveryops-test:nunca-escrita")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, v)
}

func TestKV_SetOverwrites(t *testing.T) {
	kv := openKV(t)
	ctx := context.Background()
	key := "deliveryops-test:" + t.Name()

	require.NoError(t, kv.Set(ctx, key, `[1]`))
	require.NoError(t, kv.Set(ctx, key, `[2]`))
	v, found, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[2]`, v)
}

func TestOpen_UnreachableServerFails(t *testing.T) {
	_, err := rediskv.Open(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestKV_ClosedClientReportsError(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	kv := rediskv.New(rdb)
	require.NoError(t, kv.Close())

	_, found, err := kv.Get(context.Background(), "products")
	assert.Error(t, err, "un error de conexión no es clave ausente")
	assert.False(t, found)
}
