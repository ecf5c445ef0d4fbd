package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ThrottleRepository keeps fixed-window submission counters in Redis.
type ThrottleRepository struct {
	client *redis.Client
	prefix string
}

// NewThrottleRepository constructs the repository. A nil client disables counting.
func NewThrottleRepository(client *redis.Client) *ThrottleRepository {
	return &ThrottleRepository{client: client, prefix: "schedule:submit:"}
}

// Enabled reports whether a Redis client is configured.
func (r *ThrottleRepository) Enabled() bool {
	return r != nil && r.client != nil
}

// Hit increments the counter for key and returns the count inside the current window.
func (r *ThrottleRepository) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	if !r.Enabled() {
		return 0, nil
	}

	fullKey := r.prefix + key
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, fullKey)
		pipe.ExpireNX(ctx, fullKey, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis throttle %s: %w", fullKey, err)
	}
	return incr.Val(), nil
}
