package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ConnectRedis initializes and returns a Redis client instance.
func ConnectRedis(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// Revalidator invalidates cached portal views after a mutation.
type Revalidator interface {
	RevalidateQuote(ctx context.Context, quoteID, customerEmail string)
}

// RedisRevalidator drops cached list and detail keys for the admin, customer
// and supplier surfaces so the next render reloads fresh data.
type RedisRevalidator struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisRevalidator creates a new RedisRevalidator.
func NewRedisRevalidator(client *redis.Client, logger zerolog.Logger) *RedisRevalidator {
	return &RedisRevalidator{client: client, logger: logger}
}

// RevalidateQuote deletes the cached views touching the given quote.
// Failures are logged, never surfaced.
func (r *RedisRevalidator) RevalidateQuote(ctx context.Context, quoteID, customerEmail string) {
	keys := []string{
		"views:admin:quotes",
		fmt.Sprintf("views:admin:quote:%s", quoteID),
		fmt.Sprintf("views:customer:%s:quotes", customerEmail),
		fmt.Sprintf("views:customer:quote:%s", quoteID),
		"views:supplier:quotes",
		fmt.Sprintf("views:supplier:quote:%s", quoteID),
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn().Err(err).Str("quote_id", quoteID).Msg("failed to revalidate cached views")
	}
}

// NoopRevalidator is used when Redis is not configured.
type NoopRevalidator struct{}

// RevalidateQuote does nothing.
func (NoopRevalidator) RevalidateQuote(ctx context.Context, quoteID, customerEmail string) {}
