package usecase

import (
	"context"

	"github.com/fastygo/choreboard/domain"
)

// EventPublisher fans domain events out to listeners so use cases stay transport-agnostic.
type EventPublisher interface {
	PublishCompletion(ctx context.Context, event domain.CompletionEvent) error
	PublishDigest(ctx context.Context, digest domain.Digest) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishCompletion(context.Context, domain.CompletionEvent) error { return nil }

func (NopPublisher) PublishDigest(context.Context, domain.Digest) error { return nil }

var _ EventPublisher = NopPublisher{}
