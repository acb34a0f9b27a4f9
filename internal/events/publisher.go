// Package events feeds ledger mutations onto a Redis stream for operators
// and downstream consumers. Publishing is strictly fire-and-forget: no
// caller ever waits on it or sees its outcome.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher writes ledger events to a Redis stream. A nil *Publisher is
// valid and publishes nothing, so callers don't guard every call site when
// Redis is not configured.
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a Publisher backed by the given Redis client.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish appends an event to the ledger stream.
func (p *Publisher) Publish(ctx context.Context, eventType string, data any) error {
	if p == nil {
		return nil
	}

	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: LedgerEventsStream,
		Values: map[string]any{
			"event": eventJSON,
		},
	}
	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
