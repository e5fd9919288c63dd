package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/repository"
)

type interviewRepository struct {
	pool *pgxpool.Pool
}

// NewInterviewRepository returns a Postgres-backed implementation of InterviewRepository.
func NewInterviewRepository(pool *pgxpool.Pool) repository.InterviewRepository {
	return &interviewRepository{pool: pool}
}

func (r *interviewRepository) GetByApplication(ctx context.Context, applicationID string) (*domain.Interview, error) {
	const query = `
	SELECT id, application_id, scheduled_at, details, created_at, updated_at
	FROM interviews
	WHERE application_id = $1
	`
	var iv domain.Interview
	if err := r.pool.QueryRow(ctx, query, applicationID).Scan(
		&iv.ID,
		&iv.ApplicationID,
		&iv.ScheduledAt,
		&iv.Details,
		&iv.CreatedAt,
		&iv.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInterviewNotFound
		}
		return nil, err
	}
	return &iv, nil
}

// Upsert keeps one interview row per application; rescheduling overwrites the
// date and details in place.
func (r *interviewRepository) Upsert(ctx context.Context, iv *domain.Interview) (*domain.Interview, error) {
	if iv == nil {
		return nil, domain.ErrInvalidPayload
	}
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO interviews (id, application_id, scheduled_at, details)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (application_id) DO UPDATE
	SET scheduled_at = EXCLUDED.scheduled_at,
		details = EXCLUDED.details,
		updated_at = NOW()
	RETURNING id, created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		iv.ID,
		iv.ApplicationID,
		iv.ScheduledAt,
		iv.Details,
	).Scan(&iv.ID, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
		return nil, err
	}
	return iv, nil
}

func (r *interviewRepository) ListUpcoming(ctx context.Context, from, until time.Time) ([]domain.Interview, error) {
	const query = `
	SELECT id, application_id, scheduled_at, details, created_at, updated_at
	FROM interviews
	WHERE scheduled_at >= $1 AND scheduled_at < $2
	ORDER BY scheduled_at
	`
	rows, err := r.pool.Query(ctx, query, from, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		var iv domain.Interview
		if err := rows.Scan(
			&iv.ID,
			&iv.ApplicationID,
			&iv.ScheduledAt,
			&iv.Details,
			&iv.CreatedAt,
			&iv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}
