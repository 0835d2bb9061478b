package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ReceiptCache implements ports.IdempotencyCache for credited deposit
// receipts. Receipts are immutable once written: the first Set for a key
// wins and later writes leave it untouched.
type ReceiptCache struct {
	client goredis.UniversalClient
	prefix string
}

func NewReceiptCache(client goredis.UniversalClient) *ReceiptCache {
	return &ReceiptCache{
		client: client,
		prefix: keyPrefix + "receipt:",
	}
}

// Get returns the stored receipt, or nil, nil on a miss.
func (c *ReceiptCache) Get(ctx context.Context, key string) ([]byte, error) {
	receipt, err := c.client.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("redis receipt get %s: %w", key, err)
	}
	return receipt, nil
}

func (c *ReceiptCache) Set(ctx context.Context, key string, receipt []byte, ttl time.Duration) error {
	if err := c.client.SetNX(ctx, c.prefix+key, receipt, ttl).Err(); err != nil {
		return fmt.Errorf("redis receipt set %s: %w", key, err)
	}
	return nil
}
