package redis

import (
	"context"
	"encoding/json"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/usecase"
)

const (
	ChannelCompletions = "completions"
	ChannelDigests     = "digests"
)

type eventPublisher struct {
	client *redislib.Client
	prefix string
}

// NewEventPublisher publishes domain events as JSON on Redis pub/sub channels named
// "<prefix>:completions" and "<prefix>:digests".
func NewEventPublisher(client *redislib.Client, prefix string) usecase.EventPublisher {
	if prefix == "" {
		prefix = "choreboard"
	}
	return &eventPublisher{client: client, prefix: prefix}
}

func (p *eventPublisher) PublishCompletion(ctx context.Context, event domain.CompletionEvent) error {
	return p.publish(ctx, ChannelCompletions, event)
}

func (p *eventPublisher) PublishDigest(ctx context.Context, digest domain.Digest) error {
	return p.publish(ctx, ChannelDigests, digest)
}

func (p *eventPublisher) publish(ctx context.Context, channel string, payload interface{}) error {
	if p.client == nil {
		return fmt.Errorf("redis client not configured")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.Channel(channel), body).Err()
}

// Channel returns the fully qualified channel name.
func (p *eventPublisher) Channel(name string) string {
	return p.prefix + ":" + name
}
