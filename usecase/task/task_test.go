package task

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/repository/bolt"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.CompletionEvent
	err    error
}

func (p *recordingPublisher) PublishCompletion(_ context.Context, event domain.CompletionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) PublishDigest(context.Context, domain.Digest) error {
	return nil
}

type fixture struct {
	uc        *UseCase
	store     *bolt.Store
	publisher *recordingPublisher
	clock     *time.Time
	ana       *domain.Participant
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "chores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	participants := bolt.NewParticipantRepository(store)
	ana, err := participants.Create(context.Background(), &domain.Participant{Name: "Ana"})
	require.NoError(t, err)

	f := &fixture{store: store, publisher: &recordingPublisher{}, clock: &now, ana: ana}
	f.uc = New(
		bolt.NewTaskRepository(store),
		participants,
		bolt.NewCompletionRepository(store),
		now.Location(),
		nil,
		WithClock(func() time.Time { return *f.clock }),
		WithPublisher(f.publisher),
	)
	return f
}

func TestCreateTaskValidation(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 1, 10, 0, 0, 0, saoPaulo(t)))
	ctx := context.Background()

	_, err := f.uc.CreateTask(ctx, CreateInput{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	_, err = f.uc.CreateTask(ctx, CreateInput{Title: "Dishes", RecurrenceType: "hourly"})
	assert.ErrorIs(t, err, domain.ErrInvalidRecurrence)

	oneOff, err := f.uc.CreateTask(ctx, CreateInput{
		Title:          "  Fix sink ",
		IsOneAndDone:   true,
		RecurrenceType: "weekly",
		RecurrenceDays: []int{1},
	})
	require.NoError(t, err)
	assert.Equal(t, "Fix sink", oneOff.Title)
	assert.Equal(t, domain.RecurrenceNone, oneOff.RecurrenceType)
	assert.Empty(t, oneOff.RecurrenceDays)

	daily, err := f.uc.CreateTask(ctx, CreateInput{Title: "Feed cat", RecurrenceType: "daily", RecurrenceDays: []int{1, 2}})
	require.NoError(t, err)
	assert.Empty(t, daily.RecurrenceDays)

	weekly, err := f.uc.CreateTask(ctx, CreateInput{Title: "Laundry", RecurrenceType: "weekly", RecurrenceDays: []int{5, 2, 2, 9}})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, weekly.RecurrenceDays)
	assert.NotEmpty(t, weekly.ID)
}

func TestCompleteTaskErrors(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 1, 10, 0, 0, 0, saoPaulo(t)))
	ctx := context.Background()

	task, err := f.uc.CreateTask(ctx, CreateInput{Title: "Dishes", RecurrenceType: "daily"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.CompleteTask(ctx, task.ID, ""), domain.ErrParticipantRequired)
	assert.ErrorIs(t, f.uc.CompleteTask(ctx, "not-a-uuid", f.ana.ID), domain.ErrTaskNotFound)
	assert.ErrorIs(t, f.uc.CompleteTask(ctx, uuid.NewString(), f.ana.ID), domain.ErrTaskNotFound)
	assert.ErrorIs(t, f.uc.CompleteTask(ctx, task.ID, "nobody"), domain.ErrParticipantNotFound)
	assert.ErrorIs(t, f.uc.CompleteTask(ctx, task.ID, uuid.NewString()), domain.ErrParticipantNotFound)
	assert.Empty(t, f.publisher.events)
}

func TestCompleteOneAndDoneArchives(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 1, 10, 0, 0, 0, saoPaulo(t)))
	ctx := context.Background()

	task, err := f.uc.CreateTask(ctx, CreateInput{Title: "Fix sink", IsOneAndDone: true})
	require.NoError(t, err)

	require.NoError(t, f.uc.CompleteTask(ctx, task.ID, f.ana.ID))

	tasks, err := f.uc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	require.Len(t, f.publisher.events, 1)
	assert.True(t, f.publisher.events[0].Archived)
	assert.Equal(t, "Ana", f.publisher.events[0].CompletedBy)
}

func TestCompletePublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 1, 10, 0, 0, 0, saoPaulo(t)))
	f.publisher.err = errors.New("redis down")
	ctx := context.Background()

	task, err := f.uc.CreateTask(ctx, CreateInput{Title: "Dishes", RecurrenceType: "daily"})
	require.NoError(t, err)
	assert.NoError(t, f.uc.CompleteTask(ctx, task.ID, f.ana.ID))
}

func TestListTasksEmpty(t *testing.T) {
	f := newFixture(t, time.Date(2024, 3, 1, 10, 0, 0, 0, saoPaulo(t)))

	tasks, err := f.uc.ListTasks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestWashDishesScenario(t *testing.T) {
	loc := saoPaulo(t)
	friday := time.Date(2024, 3, 1, 10, 0, 0, 0, loc)
	f := newFixture(t, friday)
	ctx := context.Background()

	_, err := f.uc.CreateTask(ctx, CreateInput{Title: "Someday", RecurrenceType: "none"})
	require.NoError(t, err)
	created, err := f.uc.CreateTask(ctx, CreateInput{
		Title:          "Wash dishes",
		RecurrenceType: "weekly",
		RecurrenceDays: []int{2, 5},
	})
	require.NoError(t, err)

	tasks, err := f.uc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, created.ID, tasks[0].ID)
	require.NotNil(t, tasks[0].NextDue)
	assert.Equal(t, "2024-03-01", tasks[0].NextDue.In(loc).Format("2006-01-02"))
	assert.Nil(t, tasks[0].LastCompletion)
	assert.Nil(t, tasks[1].NextDue)

	require.NoError(t, f.uc.CompleteTask(ctx, created.ID, f.ana.ID))

	later := friday.Add(time.Hour)
	f.clock = &later
	tasks, err = f.uc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.NotNil(t, tasks[0].LastCompletion)
	assert.Equal(t, "Ana", tasks[0].LastCompletion.CompletedBy)
	require.NotNil(t, tasks[0].NextDue)
	assert.Equal(t, time.Tuesday, tasks[0].NextDue.In(loc).Weekday())
	assert.Equal(t, "2024-03-05", tasks[0].NextDue.In(loc).Format("2006-01-02"))
}
