package redis

import (
	"context"
	"time"

	"ms-storefront/internal/logger"

	"github.com/go-redis/redis/v8"
)

const guardKeyPrefix = "order_submit:"

// Guard prevents the same client-generated order id from being finalized
// twice, e.g. a resubmit after a network blip. Acquire wins at most once
// per order id within the TTL window.
type Guard struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *logger.Logger
}

func NewGuard(client *redis.Client, ttl time.Duration, log *logger.Logger) *Guard {
	return &Guard{Client: client, TTL: ttl, Logger: log}
}

// Acquire claims the order id. Returns false when another submission of
// the same id already holds the claim.
func (g *Guard) Acquire(ctx context.Context, orderID string) (bool, error) {
	ok, err := g.Client.SetNX(ctx, guardKeyPrefix+orderID, time.Now().UTC().Format(time.RFC3339), g.TTL).Result()
	if err != nil {
		return false, err
	}
	if !ok {
		g.Logger.Warn("GUARD", "duplicate submission blocked for order "+orderID)
	}
	return ok, nil
}

// Release frees the claim so the shopper can resubmit after a failed
// attempt.
func (g *Guard) Release(ctx context.Context, orderID string) error {
	_, err := g.Client.Del(ctx, guardKeyPrefix+orderID).Result()
	return err
}
