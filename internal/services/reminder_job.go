package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/choreboard/domain"
)

// DigestPublisher builds and sends the due-today digest.
type DigestPublisher interface {
	Publish(ctx context.Context) (*domain.Digest, error)
}

// ReminderJob publishes the digest on a standard five-field cron schedule evaluated in the
// home timezone.
type ReminderJob struct {
	cron    *cron.Cron
	digests DigestPublisher
	loc     *time.Location
	timeout time.Duration
	logger  *zap.Logger
}

func NewReminderJob(schedule string, loc *time.Location, digests DigestPublisher, logger *zap.Logger) (*ReminderJob, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	job := &ReminderJob{
		cron:    cron.New(cron.WithLocation(loc)),
		digests: digests,
		loc:     loc,
		timeout: 30 * time.Second,
		logger:  logger,
	}
	if _, err := job.cron.AddFunc(schedule, job.Run); err != nil {
		return nil, err
	}
	return job, nil
}

// Run publishes one digest.
func (j *ReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	if _, err := j.digests.Publish(ctx); err != nil {
		j.logger.Error("reminder digest failed", zap.Error(err))
	}
}

// Next returns the next scheduled run after now.
func (j *ReminderJob) Next(now time.Time) time.Time {
	entries := j.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(now.In(j.loc))
}

func (j *ReminderJob) Start() {
	j.cron.Start()
	j.logger.Info("reminder job scheduled", zap.Time("next_run", j.Next(time.Now())))
}

func (j *ReminderJob) Stop(ctx context.Context) {
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}
