package repository

import (
	"context"

	"github.com/fastygo/choreboard/domain"
)

type ParticipantRepository interface {
	// List returns every participant ordered by name.
	List(ctx context.Context) ([]domain.Participant, error)
	GetByID(ctx context.Context, id string) (*domain.Participant, error)
	Create(ctx context.Context, participant *domain.Participant) (*domain.Participant, error)
}
