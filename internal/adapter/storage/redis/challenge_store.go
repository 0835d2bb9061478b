package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	goredis "github.com/redis/go-redis/v9"
)

// ChallengeStore implements ports.ChallengeStore. One outstanding
// challenge per account; a new challenge replaces the previous one.
type ChallengeStore struct {
	client goredis.UniversalClient
	prefix string
}

func NewChallengeStore(client goredis.UniversalClient) *ChallengeStore {
	return &ChallengeStore{
		client: client,
		prefix: keyPrefix + "challenge:",
	}
}

func (s *ChallengeStore) key(account common.Address) string {
	return s.prefix + strings.ToLower(account.Hex())
}

func (s *ChallengeStore) Put(ctx context.Context, account common.Address, nonce string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(account), nonce, ttl).Err(); err != nil {
		return fmt.Errorf("redis challenge put: %w", err)
	}
	return nil
}

// Consume atomically removes and returns the nonce, "" if none is outstanding.
func (s *ChallengeStore) Consume(ctx context.Context, account common.Address) (string, error) {
	nonce, err := s.client.GetDel(ctx, s.key(account)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis challenge consume: %w", err)
	}
	return nonce, nil
}
