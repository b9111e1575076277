// Package events publishes resource mutation events over Redis pub/sub.

package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const channel = "playlist.events"

type Event struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	ID     int64  `json:"id"`
}

type Publisher struct {
	rdb *redis.Client
}

// A nil client yields a publisher that drops every event
func New(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// Publish is best-effort: failures are logged, never surfaced to the caller.
func (p *Publisher) Publish(ctx context.Context, logger *slog.Logger, event Event) {
	if p == nil || p.rdb == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.ErrorContext(ctx, "Unable to marshal event", slog.Any("error", err))
		return
	}
	if err := p.rdb.Publish(ctx, channel, string(data)).Err(); err != nil {
		logger.ErrorContext(ctx, "Unable to publish event", slog.Any("error", err))
	}
}
