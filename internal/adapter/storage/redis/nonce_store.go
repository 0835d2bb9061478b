package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NonceStore implements ports.NonceStore with SET NX, scoped per HMAC peer.
type NonceStore struct {
	client goredis.UniversalClient
	prefix string
}

func NewNonceStore(client goredis.UniversalClient) *NonceStore {
	return &NonceStore{
		client: client,
		prefix: keyPrefix + "nonce:",
	}
}

// CheckAndSet reports true if the nonce was unused and is now reserved for ttl.
func (s *NonceStore) CheckAndSet(ctx context.Context, peer string, nonce string, ttl time.Duration) (bool, error) {
	fresh, err := s.client.SetNX(ctx, s.prefix+peer+":"+nonce, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis nonce check: %w", err)
	}
	return fresh, nil
}
