package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/repository"
)

type completionRepository struct {
	pool *pgxpool.Pool
}

// NewCompletionRepository returns a Postgres-backed completion log.
func NewCompletionRepository(pool *pgxpool.Pool) repository.CompletionRepository {
	return &completionRepository{pool: pool}
}

func (r *completionRepository) List(ctx context.Context, filter repository.CompletionFilter) ([]domain.CompletionView, error) {
	query := `
	SELECT c.id::text, c.task_id::text, c.completed_by, c.participant_id::text, c.completed_at,
		COALESCE(t.title, ''), COALESCE(p.name, '')
	FROM task_completions c
	LEFT JOIN tasks t ON t.id = c.task_id
	LEFT JOIN participants p ON p.id = c.participant_id
	WHERE ($1::text[] IS NULL OR c.task_id = ANY($1::text[]::uuid[]))
	  AND (NOT $2::boolean OR c.participant_id IS NOT NULL)
	  AND ($3::timestamptz IS NULL OR c.completed_at >= $3)
	  AND ($4::timestamptz IS NULL OR c.completed_at <= $4)
	`
	if filter.Descending {
		query += `ORDER BY c.completed_at DESC`
	} else {
		query += `ORDER BY c.completed_at ASC`
	}

	var taskIDs interface{}
	if len(filter.TaskIDs) > 0 {
		taskIDs = filter.TaskIDs
	}

	rows, err := r.pool.Query(ctx, query,
		taskIDs,
		filter.ParticipantIDNotNull,
		filter.CompletedAfter,
		filter.CompletedBefore,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []domain.CompletionView
	for rows.Next() {
		var view domain.CompletionView
		if err := rows.Scan(
			&view.ID,
			&view.TaskID,
			&view.CompletedBy,
			&view.ParticipantID,
			&view.CompletedAt,
			&view.TaskTitle,
			&view.ParticipantName,
		); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

func (r *completionRepository) Insert(ctx context.Context, completion *domain.Completion) (*domain.Completion, error) {
	if completion == nil || completion.TaskID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if completion.ID == "" {
		completion.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO task_completions (id, task_id, completed_by, participant_id, completed_at)
	VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
	RETURNING completed_at
	`

	if err := r.pool.QueryRow(ctx, query,
		completion.ID,
		completion.TaskID,
		completion.CompletedBy,
		completion.ParticipantID,
		nullTime(completion.CompletedAt),
	).Scan(&completion.CompletedAt); err != nil {
		return nil, err
	}
	return completion, nil
}
