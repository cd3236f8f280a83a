package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/repository"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "chores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestTaskRepository(t *testing.T) {
	store := openStore(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	repo := NewTaskRepository(store)
	ctx := context.Background()

	second, err := repo.Create(ctx, &domain.Task{Title: "Take out trash", CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	first, err := repo.Create(ctx, &domain.Task{Title: "Wash dishes", RecurrenceType: domain.RecurrenceDaily})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, base, first.CreatedAt)

	_, err = repo.Create(ctx, &domain.Task{ID: first.ID, Title: "dup"})
	assert.Error(t, err)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecurrenceDaily, got.RecurrenceType)

	require.NoError(t, repo.Archive(ctx, second.ID))
	active, err = repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	archived, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, repo.Archive(ctx, "missing"), domain.ErrTaskNotFound)
}

func TestParticipantRepository(t *testing.T) {
	store := openStore(t)
	repo := NewParticipantRepository(store)
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, name := range []string{"Carla", "Ana", "Bruno"} {
		_, err := repo.Create(ctx, &domain.Participant{Name: name})
		require.NoError(t, err)
	}

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Ana", list[0].Name)
	assert.Equal(t, "Carla", list[2].Name)

	got, err := repo.GetByID(ctx, list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Bruno", got.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
}

func TestCompletionRepository(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	tasks := NewTaskRepository(store)
	participants := NewParticipantRepository(store)
	repo := NewCompletionRepository(store)

	task, err := tasks.Create(ctx, &domain.Task{Title: "Wash dishes"})
	require.NoError(t, err)
	ana, err := participants.Create(ctx, &domain.Participant{Name: "Ana"})
	require.NoError(t, err)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	// Inserted out of order; the log is read back chronologically.
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		_, err := repo.Insert(ctx, &domain.Completion{
			TaskID:        task.ID,
			CompletedBy:   ana.Name,
			ParticipantID: &ana.ID,
			CompletedAt:   base.Add(offset),
		})
		require.NoError(t, err)
	}
	_, err = repo.Insert(ctx, &domain.Completion{TaskID: task.ID, CompletedBy: "Guest", CompletedAt: base.Add(3 * time.Hour)})
	require.NoError(t, err)

	all, err := repo.List(ctx, repository.CompletionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CompletedAt.Before(all[i].CompletedAt))
	}
	assert.Equal(t, "Wash dishes", all[0].TaskTitle)
	assert.Equal(t, "Ana", all[0].ParticipantName)
	assert.Empty(t, all[3].ParticipantName)

	desc, err := repo.List(ctx, repository.CompletionFilter{Descending: true, ParticipantIDNotNull: true})
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, base.Add(2*time.Hour), desc[0].CompletedAt.UTC())

	after, before := base.Add(30*time.Minute), base.Add(time.Hour)
	windowed, err := repo.List(ctx, repository.CompletionFilter{CompletedAfter: &after, CompletedBefore: &before})
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, base.Add(time.Hour), windowed[0].CompletedAt.UTC())

	none, err := repo.List(ctx, repository.CompletionFilter{TaskIDs: []string{"other"}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCompletionInsertValidatesReferences(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	repo := NewCompletionRepository(store)

	_, err := repo.Insert(ctx, &domain.Completion{TaskID: "missing"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	task, err := NewTaskRepository(store).Create(ctx, &domain.Task{Title: "Vacuum"})
	require.NoError(t, err)
	ghost := "ghost"
	_, err = repo.Insert(ctx, &domain.Completion{TaskID: task.ID, ParticipantID: &ghost})
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)

	_, err = repo.Insert(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestClosedStore(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Ping())
	require.NoError(t, store.Close())

	assert.Error(t, store.Ping())
	_, err := NewParticipantRepository(store).List(context.Background())
	assert.Error(t, err)
}
