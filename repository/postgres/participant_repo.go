package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/repository"
)

type participantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository instantiates a Postgres-backed participant repository.
func NewParticipantRepository(pool *pgxpool.Pool) repository.ParticipantRepository {
	return &participantRepository{pool: pool}
}

func (r *participantRepository) List(ctx context.Context) ([]domain.Participant, error) {
	const query = `
		SELECT id::text, name, created_at
		FROM participants
		ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		participant, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *participant)
	}
	return participants, rows.Err()
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	const query = `
		SELECT id::text, name, created_at
		FROM participants
		WHERE id = $1
	`
	return scanParticipant(r.pool.QueryRow(ctx, query, id))
}

func (r *participantRepository) Create(ctx context.Context, participant *domain.Participant) (*domain.Participant, error) {
	if participant == nil {
		return nil, domain.ErrInvalidPayload
	}
	if participant.ID == "" {
		participant.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO participants (id, name, created_at)
	VALUES ($1, $2, COALESCE($3, NOW()))
	RETURNING created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		participant.ID,
		participant.Name,
		nullTime(participant.CreatedAt),
	).Scan(&participant.CreatedAt); err != nil {
		return nil, err
	}
	return participant, nil
}

func scanParticipant(row scanner) (*domain.Participant, error) {
	var participant domain.Participant
	if err := row.Scan(&participant.ID, &participant.Name, &participant.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, err
	}
	return &participant, nil
}
