// Package events carries registration submission announcements over
// Redis PubSub to the agent stream.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/madaris/school-app-backend/internal/config"
	"github.com/madaris/school-app-backend/internal/service"
	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes submission events on the shared Redis
// channel. It satisfies service.RegistrationEventPublisher.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// PublishSubmitted serializes the event and fires it on the channel.
// Callers treat failures as non-fatal.
func (p *RedisPublisher) PublishSubmitted(ctx context.Context, event service.RegistrationSubmittedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.rdb.Publish(ctx, config.CacheKey.RegistrationEventsChannel(), payload).Err()
}
