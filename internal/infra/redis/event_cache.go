package redis

import (
	"context"
	"time"

	"subscription-billing/internal/domain/ports/repository"
)

var _ repository.EventCache = (*EventCache)(nil)

// EventCache keeps recently applied webhook event ids so redeliveries can be
// short-circuited without a database round trip. It is advisory: the durable
// idempotency claim stays authoritative, so entries may expire or be lost at
// any time without affecting correctness.
type EventCache struct {
	cli RedisClient
	ttl time.Duration
}

func NewEventCache(cli RedisClient, ttl time.Duration) *EventCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &EventCache{cli: cli, ttl: ttl}
}

func key(eventID string) string { return "webhook:applied:" + eventID }

func (c *EventCache) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := c.cli.Exists(ctx, key(eventID))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *EventCache) MarkApplied(ctx context.Context, eventID string) error {
	_, err := c.cli.SetNX(ctx, key(eventID), 1, c.ttl)
	return err
}
