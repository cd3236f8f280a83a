// Package summary reduces the completion log into windowed statistics and streaks.
package summary

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/internal/metrics"
	"github.com/fastygo/choreboard/pkg/logger"
	"github.com/fastygo/choreboard/repository"
)

type UseCase struct {
	participants repository.ParticipantRepository
	completions  repository.CompletionRepository
	location     *time.Location
	now          func() time.Time
	logger       *zap.Logger
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

func New(
	participants repository.ParticipantRepository,
	completions repository.CompletionRepository,
	location *time.Location,
	logger *zap.Logger,
	opts ...Option,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	uc := &UseCase{
		participants: participants,
		completions:  completions,
		location:     location,
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Summary builds the statistics for period. An empty period means weekly.
func (uc *UseCase) Summary(ctx context.Context, rawPeriod string) (*domain.Summary, error) {
	period, err := domain.ParsePeriod(rawPeriod)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	window, err := NewWindow(period, now, uc.location)
	if err != nil {
		return nil, err
	}

	var (
		roster      []domain.Participant
		completions []domain.CompletionView
		history     []domain.CompletionView
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = uc.participants.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		start, end := window.Start, window.End
		completions, err = uc.completions.List(gctx, repository.CompletionFilter{
			CompletedAfter:  &start,
			CompletedBefore: &end,
		})
		return err
	})
	g.Go(func() error {
		var err error
		history, err = uc.completions.List(gctx, repository.CompletionFilter{
			ParticipantIDNotNull: true,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		logger.WithRequestID(ctx, uc.logger).Error("failed to load summary inputs",
			zap.String("period", string(period)), zap.Error(err))
		return nil, err
	}

	summary := Summarize(roster, completions, window, uc.location)
	AttachStreaks(&summary, history, window.Today(), uc.location)
	metrics.RecordSummary(string(period))
	return &summary, nil
}
