package repository

import (
	"context"
	"time"

	"github.com/fastygo/choreboard/domain"
)

// CompletionFilter narrows a completion listing. Zero values disable a condition.
type CompletionFilter struct {
	TaskIDs              []string
	ParticipantIDNotNull bool
	CompletedAfter       *time.Time // inclusive
	CompletedBefore      *time.Time // inclusive
	Descending           bool
}

// Matches reports whether a completion passes the filter. Drivers that cannot push the
// filter down to the store use it to filter in memory.
func (f CompletionFilter) Matches(c domain.Completion) bool {
	if len(f.TaskIDs) > 0 {
		found := false
		for _, id := range f.TaskIDs {
			if id == c.TaskID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.ParticipantIDNotNull && !c.HasParticipant() {
		return false
	}
	if f.CompletedAfter != nil && c.CompletedAt.Before(*f.CompletedAfter) {
		return false
	}
	if f.CompletedBefore != nil && c.CompletedAt.After(*f.CompletedBefore) {
		return false
	}
	return true
}

type CompletionRepository interface {
	// List returns completions joined with task title and participant name, ordered by
	// completion time.
	List(ctx context.Context, filter CompletionFilter) ([]domain.CompletionView, error)
	// Insert appends a completion; the log is never updated or deleted.
	Insert(ctx context.Context, completion *domain.Completion) (*domain.Completion, error)
}
