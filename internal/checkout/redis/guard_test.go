package redis_test

import (
	"context"
	"testing"
	"time"

	checkoutredis "ms-storefront/internal/checkout/redis"
	"ms-storefront/internal/logger"

	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestGuardIntegration exercises the duplicate-submission guard against a
// real Redis container.
func TestGuardIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:latest",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer redisContainer.Terminate(ctx)

	endpoint, err := redisContainer.Endpoint(ctx, "")
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: endpoint})
	defer client.Close()
	require.NoError(t, client.Ping(ctx).Err())

	guard := checkoutredis.NewGuard(client, time.Minute, logger.NewLogger("guard-test"))

	// First submission wins, the resubmit is blocked.
	ok, err := guard.Acquire(ctx, "order-abc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.Acquire(ctx, "order-abc")
	require.NoError(t, err)
	assert.False(t, ok)

	// After release the shopper may try again.
	require.NoError(t, guard.Release(ctx, "order-abc"))

	ok, err = guard.Acquire(ctx, "order-abc")
	require.NoError(t, err)
	assert.True(t, ok)

	// Independent order ids do not contend.
	ok, err = guard.Acquire(ctx, "order-xyz")
	require.NoError(t, err)
	assert.True(t, ok)
}
