package repository

import (
	"context"

	"github.com/fastygo/choreboard/domain"
)

type TaskRepository interface {
	// ListActive returns non-archived tasks ordered by creation time.
	ListActive(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Archive(ctx context.Context, id string) error
}
