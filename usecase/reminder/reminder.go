// Package reminder builds the daily digest of due tasks.
package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/internal/metrics"
	"github.com/fastygo/choreboard/pkg/calendar"
	"github.com/fastygo/choreboard/usecase"
)

// TaskLister yields active tasks decorated with their next due time.
type TaskLister interface {
	ListTasks(ctx context.Context) ([]domain.TaskWithLast, error)
}

type UseCase struct {
	tasks     TaskLister
	publisher usecase.EventPublisher
	location  *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// Option customizes a UseCase.
type Option func(*UseCase)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func New(tasks TaskLister, publisher usecase.EventPublisher, location *time.Location, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	if publisher == nil {
		publisher = usecase.NopPublisher{}
	}
	uc := &UseCase{
		tasks:     tasks,
		publisher: publisher,
		location:  location,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Digest lists the tasks due before the end of today in the home timezone, overdue ones
// included, in next-due order.
func (uc *UseCase) Digest(ctx context.Context) (*domain.Digest, error) {
	today := calendar.DayKey(uc.now(), uc.location)
	tomorrow, err := calendar.AddDays(today, 1)
	if err != nil {
		return nil, err
	}
	endOfDay, err := calendar.Midnight(tomorrow, uc.location)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.tasks.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	digest := &domain.Digest{Day: today, Tasks: make([]domain.TaskWithLast, 0, len(tasks))}
	for _, t := range tasks {
		if t.NextDue != nil && t.NextDue.Before(endOfDay) {
			digest.Tasks = append(digest.Tasks, t)
		}
	}
	return digest, nil
}

// Publish builds today's digest and hands it to the event publisher. Empty digests are
// not published.
func (uc *UseCase) Publish(ctx context.Context) (*domain.Digest, error) {
	digest, err := uc.Digest(ctx)
	if err != nil {
		metrics.RecordDigest("failed")
		return nil, err
	}
	if len(digest.Tasks) == 0 {
		uc.logger.Debug("nothing due today", zap.String("day", digest.Day))
		metrics.RecordDigest("empty")
		return digest, nil
	}
	if err := uc.publisher.PublishDigest(ctx, *digest); err != nil {
		metrics.RecordDigest("failed")
		return nil, err
	}
	metrics.RecordDigest("success")
	uc.logger.Info("digest published", zap.String("day", digest.Day), zap.Int("tasks", len(digest.Tasks)))
	return digest, nil
}
