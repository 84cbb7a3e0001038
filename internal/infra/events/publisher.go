// Package events publishes committed domain events to Redis pub/sub
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrEncode failed to marshal the event envelope
	ErrEncode = errors.New("events: failed to encode event")

	// ErrPublish redis rejected or did not receive the message
	ErrPublish = errors.New("events: failed to publish event")
)

// RedisClient subset of *redis.Client used by the publisher
type RedisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Publisher sends events to the channel <prefix>.<event type>
type Publisher struct {
	client RedisClient
	prefix string
}

// NewPublisher creates a redis publisher
func NewPublisher(client RedisClient, prefix string) *Publisher {
	return &Publisher{client: client, prefix: prefix}
}

// NewClient connects to redis
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Name sink name used in logs and metrics
func (p *Publisher) Name() string {
	return "redis"
}

// Channel redis channel of an event type
func (p *Publisher) Channel(t domain.EventType) string {
	return p.prefix + "." + string(t)
}

// Send publishes the JSON envelope of event
func (p *Publisher) Send(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := p.client.Publish(ctx, p.Channel(event.Type), payload).Err(); err != nil {
		return fmt.Errorf("%w: channel=%s: %w", ErrPublish, p.Channel(event.Type), err)
	}

	return nil
}
