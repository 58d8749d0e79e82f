package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker provides borrow-submission idempotency checks backed by Redis.
// Key format: borrow_dedup:<idempotency_key> → inserted ledger id
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// Seen returns the ledger id recorded for this idempotency key, or "" when
// the key has not been seen.
func (d *DedupChecker) Seen(ctx context.Context, key string) (string, error) {
	id, err := d.client.Get(ctx, d.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("dedup check: %w", err)
	}
	return id, nil
}

// Mark records the ledger id created for this key (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, key, insertedID string) error {
	return d.client.Set(ctx, d.key(key), insertedID, dedupTTL).Err()
}

func (d *DedupChecker) key(key string) string {
	return "borrow_dedup:" + key
}
