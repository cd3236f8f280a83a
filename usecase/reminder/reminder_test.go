package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/choreboard/domain"
)

type stubLister struct {
	tasks []domain.TaskWithLast
	err   error
}

func (s stubLister) ListTasks(context.Context) ([]domain.TaskWithLast, error) {
	return s.tasks, s.err
}

type digestRecorder struct {
	digests []domain.Digest
	err     error
}

func (r *digestRecorder) PublishCompletion(context.Context, domain.CompletionEvent) error { return nil }

func (r *digestRecorder) PublishDigest(_ context.Context, d domain.Digest) error {
	r.digests = append(r.digests, d)
	return r.err
}

func due(t time.Time) *time.Time { return &t }

func TestDigest(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 7, 0, 0, 0, loc)

	lister := stubLister{tasks: []domain.TaskWithLast{
		{Task: domain.Task{ID: "overdue"}, NextDue: due(now.AddDate(0, 0, -2))},
		{Task: domain.Task{ID: "tonight"}, NextDue: due(time.Date(2024, 3, 1, 23, 59, 0, 0, loc))},
		// Already the 2nd in Sao Paulo.
		{Task: domain.Task{ID: "tomorrow"}, NextDue: due(time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC))},
		{Task: domain.Task{ID: "never"}},
	}}

	uc := New(lister, nil, loc, nil, WithClock(func() time.Time { return now }))
	digest, err := uc.Digest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", digest.Day)
	require.Len(t, digest.Tasks, 2)
	assert.Equal(t, "overdue", digest.Tasks[0].ID)
	assert.Equal(t, "tonight", digest.Tasks[1].ID)
}

func TestPublish(t *testing.T) {
	now := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	clock := WithClock(func() time.Time { return now })

	t.Run("publishes due tasks", func(t *testing.T) {
		rec := &digestRecorder{}
		lister := stubLister{tasks: []domain.TaskWithLast{{Task: domain.Task{ID: "a"}, NextDue: due(now)}}}
		uc := New(lister, rec, time.UTC, nil, clock)

		digest, err := uc.Publish(context.Background())
		require.NoError(t, err)
		assert.Len(t, digest.Tasks, 1)
		assert.Len(t, rec.digests, 1)
	})

	t.Run("skips empty digest", func(t *testing.T) {
		rec := &digestRecorder{}
		uc := New(stubLister{}, rec, time.UTC, nil, clock)

		digest, err := uc.Publish(context.Background())
		require.NoError(t, err)
		assert.Empty(t, digest.Tasks)
		assert.Empty(t, rec.digests)
	})

	t.Run("surfaces publisher errors", func(t *testing.T) {
		rec := &digestRecorder{err: errors.New("broker down")}
		lister := stubLister{tasks: []domain.TaskWithLast{{Task: domain.Task{ID: "a"}, NextDue: due(now)}}}
		uc := New(lister, rec, time.UTC, nil, clock)

		_, err := uc.Publish(context.Background())
		assert.EqualError(t, err, "broker down")
	})

	t.Run("surfaces store errors", func(t *testing.T) {
		uc := New(stubLister{err: errors.New("db down")}, nil, time.UTC, nil, clock)
		_, err := uc.Publish(context.Background())
		assert.Error(t, err)
	})
}
