package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const replayTTL = 24 * time.Hour

// ReplayStore maps Idempotency-Key values to recorded sale ids so a retried
// POST /v1/sales returns the original sale instead of writing a duplicate.
// Key format: sale-replay:<idempotency_key>
type ReplayStore struct {
	client *redis.Client
}

// NewReplayStore creates a ReplayStore wrapping the given Redis client.
func NewReplayStore(client *redis.Client) *ReplayStore {
	return &ReplayStore{client: client}
}

// Lookup returns the sale id previously recorded under key, if any.
func (s *ReplayStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	saleID, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("replay lookup: %w", err)
	}
	return saleID, true, nil
}

// Remember records the sale id under key (expires after replayTTL).
func (s *ReplayStore) Remember(ctx context.Context, key, saleID string) error {
	return s.client.Set(ctx, s.key(key), saleID, replayTTL).Err()
}

func (s *ReplayStore) key(idempotencyKey string) string {
	return "sale-replay:" + idempotencyKey
}
