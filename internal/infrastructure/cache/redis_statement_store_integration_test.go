//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startRedis(t *testing.T) RedisConfig {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return RedisConfig{Host: host, Port: port.Int()}
}

func TestRedisStatementStore_Integration(t *testing.T) {
	store, err := NewRedisStatementStore(startRedis(t), zap.NewNop())
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	t.Run("set get and ttl", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "school:a:statement:skip:0:limit:10", []byte("v"), time.Minute))

		value, ok, err := store.Get(ctx, "school:a:statement:skip:0:limit:10")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", string(value))

		ttl, err := store.Client().TTL(ctx, "school:a:statement:skip:0:limit:10").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 50*time.Second)
	})

	t.Run("prefix delete spans scan batches", func(t *testing.T) {
		for i := 0; i < 3*defaultScanBatchSize; i++ {
			key := fmt.Sprintf("school:b:statement:skip:%d:limit:10", i)
			require.NoError(t, store.Set(ctx, key, []byte("v"), time.Minute))
		}
		require.NoError(t, store.Set(ctx, "school:bb:statement:skip:0:limit:10", []byte("v"), time.Minute))

		require.NoError(t, store.DeleteByPrefix(ctx, "school:b:statement:"))

		keys, err := store.Client().Keys(ctx, "school:b:statement:*").Result()
		require.NoError(t, err)
		assert.Empty(t, keys)

		_, ok, err := store.Get(ctx, "school:bb:statement:skip:0:limit:10")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
