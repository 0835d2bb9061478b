// Package redis holds the Redis-backed stores: login challenges, HMAC
// nonces, deposit receipts and rate-limit counters.
package redis

import (
	"context"
	"fmt"

	"blindbuy-escrow/config"
	"blindbuy-escrow/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyPrefix  = "bbe:"
	clientName = "blindbuy-escrow"
)

func clientOptions(cfg config.RedisConfig) *goredis.Options {
	return &goredis.Options{
		Addr:       cfg.Addr(),
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: clientName,
	}
}

// NewClient dials Redis and fails fast when it is unreachable: challenges,
// HMAC nonces and rate limits all depend on it.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(clientOptions(cfg))
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr(), err)
	}

	log.Info().Str("addr", cfg.Addr()).Int("db", cfg.DB).Msg("Redis connected")
	return client, nil
}

func NewHealthCheck(client goredis.UniversalClient) ports.Probe {
	return ports.Probe{
		Dependency: "redis",
		Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}
