package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/internal/infrastructure/buffer"
	"github.com/fastygo/choreboard/internal/metrics"
	"github.com/fastygo/choreboard/usecase"
)

// ConnectionHealth reports whether the broker behind the relay is reachable.
type ConnectionHealth interface {
	IsOnline() bool
}

// RelayConfig controls how often the outbox is drained.
type RelayConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// EventRelay delivers events to the broker and parks them in the outbox while the broker
// is unavailable. A cron job drains the outbox in the background.
type EventRelay struct {
	store  *buffer.Store
	target usecase.EventPublisher
	health ConnectionHealth
	logger *zap.Logger
	cron   *cron.Cron
	cfg    RelayConfig
}

func NewEventRelay(
	store *buffer.Store,
	target usecase.EventPublisher,
	health ConnectionHealth,
	logger *zap.Logger,
	cfg RelayConfig,
) *EventRelay {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if target == nil {
		target = usecase.NopPublisher{}
	}

	r := &EventRelay{
		store:  store,
		target: target,
		health: health,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := r.Drain(ctx); err != nil {
			r.logger.Error("outbox drain failed", zap.Error(err))
		}
	})
	return r
}

// Start launches the drain schedule.
func (r *EventRelay) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("event relay started", zap.Duration("interval", r.cfg.Interval))
}

// Stop waits for a running drain to finish or ctx to expire.
func (r *EventRelay) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("event relay stopped")
}

func (r *EventRelay) PublishCompletion(ctx context.Context, event domain.CompletionEvent) error {
	item, err := buffer.NewItem(buffer.KindCompletion, event)
	if err != nil {
		return err
	}
	return r.send(ctx, item)
}

func (r *EventRelay) PublishDigest(ctx context.Context, digest domain.Digest) error {
	item, err := buffer.NewItem(buffer.KindDigest, digest)
	if err != nil {
		return err
	}
	return r.send(ctx, item)
}

// send delivers right away when the broker looks healthy and falls back to the outbox.
func (r *EventRelay) send(ctx context.Context, item buffer.Item) error {
	if r.health == nil || r.health.IsOnline() {
		err := r.deliver(ctx, item)
		if err == nil {
			return nil
		}
		r.logger.Warn("immediate delivery failed, parking event", zap.String("kind", item.Kind), zap.Error(err))
	}
	if r.store == nil {
		return fmt.Errorf("event relay has no outbox")
	}
	if err := r.store.Enqueue(item); err != nil {
		return err
	}
	metrics.SetOutboxSize(r.Size())
	return nil
}

// Drain retries parked events in FIFO order. Events that keep failing are dropped after
// MaxRetries attempts; events older than Retention are purged.
func (r *EventRelay) Drain(ctx context.Context) error {
	if r == nil || r.store == nil {
		return nil
	}
	if r.health != nil && !r.health.IsOnline() {
		r.logger.Debug("skipping outbox drain (broker offline)")
		return nil
	}

	if purged, err := r.store.Purge(time.Now().Add(-r.cfg.Retention)); err != nil {
		r.logger.Warn("outbox purge failed", zap.Error(err))
	} else if purged > 0 {
		r.logger.Warn("purged expired events", zap.Int("count", purged))
	}

	items, err := r.store.Peek(r.cfg.BatchSize)
	if err != nil {
		return err
	}
	defer func() { metrics.SetOutboxSize(r.Size()) }()

	for _, item := range items {
		if err := r.deliver(ctx, item); err != nil {
			r.logger.Error("failed to deliver parked event",
				zap.String("item_id", item.ID),
				zap.String("kind", item.Kind),
				zap.Error(err))

			if item.Retries+1 >= r.cfg.MaxRetries {
				r.logger.Warn("dropping event (max retries reached)", zap.String("item_id", item.ID))
				_ = r.store.Remove(item)
				continue
			}
			if err := r.store.Retry(item); err != nil {
				r.logger.Error("failed to requeue event", zap.Error(err))
			}
			continue
		}

		if err := r.store.Remove(item); err != nil {
			r.logger.Warn("failed to remove delivered event", zap.Error(err))
		}
	}
	return nil
}

// Size returns the number of parked events.
func (r *EventRelay) Size() int {
	if r == nil || r.store == nil {
		return 0
	}
	size, err := r.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (r *EventRelay) deliver(ctx context.Context, item buffer.Item) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch item.Kind {
	case buffer.KindCompletion:
		var event domain.CompletionEvent
		if err := json.Unmarshal(item.Payload, &event); err != nil {
			return err
		}
		return r.target.PublishCompletion(ctx, event)
	case buffer.KindDigest:
		var digest domain.Digest
		if err := json.Unmarshal(item.Payload, &digest); err != nil {
			return err
		}
		return r.target.PublishDigest(ctx, digest)
	default:
		return fmt.Errorf("unsupported event kind %s", item.Kind)
	}
}

var _ usecase.EventPublisher = (*EventRelay)(nil)
