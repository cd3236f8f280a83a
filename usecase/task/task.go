package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/internal/metrics"
	"github.com/fastygo/choreboard/pkg/logger"
	"github.com/fastygo/choreboard/repository"
	"github.com/fastygo/choreboard/usecase"
)

// CreateInput carries a new task as submitted by a client.
type CreateInput struct {
	Title          string
	IsOneAndDone   bool
	RecurrenceType string
	RecurrenceDays []int
}

type UseCase struct {
	tasks        repository.TaskRepository
	participants repository.ParticipantRepository
	completions  repository.CompletionRepository
	publisher    usecase.EventPublisher
	location     *time.Location
	now          func() time.Time
	logger       *zap.Logger
}

// Option customizes a UseCase.
type Option func(*UseCase)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// WithPublisher sets the destination of completion events.
func WithPublisher(publisher usecase.EventPublisher) Option {
	return func(uc *UseCase) {
		if publisher != nil {
			uc.publisher = publisher
		}
	}
}

func New(
	tasks repository.TaskRepository,
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
		tasks:        tasks,
		participants: participants,
		completions:  completions,
		publisher:    usecase.NopPublisher{},
		location:     location,
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ListTasks returns active tasks with their latest completion and next due time, sorted by
// next due time with undated tasks last.
func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.TaskWithLast, error) {
	tasks, err := uc.tasks.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []domain.TaskWithLast{}, nil
	}

	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != "" {
			ids = append(ids, t.ID)
		}
	}

	completions, err := uc.completions.List(ctx, repository.CompletionFilter{
		TaskIDs:    ids,
		Descending: true,
	})
	if err != nil {
		return nil, err
	}

	latest := make(map[string]*domain.LastCompletion, len(tasks))
	for _, c := range completions {
		if _, seen := latest[c.TaskID]; seen {
			continue
		}
		actor := c.CompletedBy
		if c.HasParticipant() && c.ParticipantName != "" {
			actor = c.ParticipantName
		}
		latest[c.TaskID] = &domain.LastCompletion{CompletedBy: actor, CompletedAt: c.CompletedAt}
	}

	now := uc.now()
	out := make([]domain.TaskWithLast, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			continue
		}
		last := latest[t.ID]
		var lastAt *time.Time
		if last != nil {
			at := last.CompletedAt
			lastAt = &at
		}
		out = append(out, domain.TaskWithLast{
			Task:           t,
			LastCompletion: last,
			NextDue:        NextDue(t, lastAt, now, uc.location),
		})
	}

	SortByNextDue(out)
	return out, nil
}

// CreateTask validates and stores a new task. One-and-done tasks never carry a recurrence;
// weekdays are only kept for weekly tasks.
func (uc *UseCase) CreateTask(ctx context.Context, input CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	recurrence, err := domain.ParseRecurrenceType(input.RecurrenceType)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:        title,
		IsOneAndDone: input.IsOneAndDone,
	}
	if !input.IsOneAndDone {
		task.RecurrenceType = recurrence
		if recurrence == domain.RecurrenceWeekly {
			if days := NormalizeWeekdays(input.RecurrenceDays); len(days) > 0 {
				task.RecurrenceDays = days
			}
		}
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		logger.WithRequestID(ctx, uc.logger).Error("failed to create task", zap.Error(err))
		return nil, err
	}
	return created, nil
}

// CompleteTask appends a completion by participantID and archives one-and-done tasks.
func (uc *UseCase) CompleteTask(ctx context.Context, taskID, participantID string) error {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return domain.ErrParticipantRequired
	}
	if _, err := uuid.Parse(taskID); err != nil {
		return domain.ErrTaskNotFound
	}
	if _, err := uuid.Parse(participantID); err != nil {
		return domain.ErrParticipantNotFound
	}

	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	participant, err := uc.participants.GetByID(ctx, participantID)
	if err != nil {
		return err
	}

	completion, err := uc.completions.Insert(ctx, &domain.Completion{
		TaskID:        task.ID,
		CompletedBy:   participant.Name,
		ParticipantID: &participant.ID,
		CompletedAt:   uc.now(),
	})
	if err != nil {
		return err
	}

	if task.IsOneAndDone {
		if err := uc.tasks.Archive(ctx, task.ID); err != nil {
			return err
		}
	}
	metrics.RecordCompletion(task.IsOneAndDone)

	log := logger.WithRequestID(ctx, uc.logger)
	log.Info("task completed",
		zap.String("task_id", task.ID),
		zap.String("participant_id", participant.ID),
		zap.Bool("archived", task.IsOneAndDone))

	event := domain.CompletionEvent{
		CompletionID:  completion.ID,
		TaskID:        task.ID,
		TaskTitle:     task.Title,
		ParticipantID: participant.ID,
		CompletedBy:   participant.Name,
		CompletedAt:   completion.CompletedAt,
		Archived:      task.IsOneAndDone,
	}
	if err := uc.publisher.PublishCompletion(ctx, event); err != nil {
		log.Warn("failed to publish completion event", zap.Error(err))
	}
	return nil
}
