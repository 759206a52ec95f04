//go:build e2e

package dedupe_test

import (
	"context"
	"testing"
	"time"

	"order-saga/internal/infra/dedupe"
	"order-saga/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestStore_FirstSeen(t *testing.T) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb := dedupe.NewClient(config.RedisConfig{Addr: endpoint})
	t.Cleanup(func() { _ = rdb.Close() })
	store := dedupe.NewStore(rdb, 200*time.Millisecond)

	first, err := store.FirstSeen(ctx, "notify:OrderCreated:e-1")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.FirstSeen(ctx, "notify:OrderCreated:e-1")
	require.NoError(t, err)
	assert.False(t, again)

	other, err := store.FirstSeen(ctx, "notify:OrderCreated:e-2")
	require.NoError(t, err)
	assert.True(t, other)

	require.Eventually(t, func() bool {
		ok, err := store.FirstSeen(ctx, "notify:OrderCreated:e-1")
		return err == nil && ok
	}, 3*time.Second, 50*time.Millisecond, "keys expire after the ttl")
}
