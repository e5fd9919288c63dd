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

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository returns a Postgres-backed implementation of ApplicationRepository.
func NewApplicationRepository(pool *pgxpool.Pool) repository.ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `
	id, candidate_id, internship_id, status, applied_at, profile_match_score,
	interview_date, candidate_email, candidate_name, created_at, updated_at`

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = `
	SELECT` + applicationColumns + `
	FROM applications
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanApplication(row)
}

func (r *applicationRepository) List(ctx context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	const query = `
	SELECT` + applicationColumns + `
	FROM applications
	WHERE ($1 = '' OR candidate_id = $1)
	  AND ($2 = '' OR internship_id = $2)
	  AND ($3 = '' OR status = $3)
	ORDER BY applied_at DESC
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query,
		filter.CandidateID,
		filter.InternshipID,
		filter.Status,
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *app)
	}
	return applications, rows.Err()
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	if app == nil {
		return nil, domain.ErrInvalidPayload
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = domain.ApplicationApplied
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}

	const query = `
	INSERT INTO applications (id, candidate_id, internship_id, status, applied_at, profile_match_score, candidate_email, candidate_name)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		app.ID,
		app.CandidateID,
		app.InternshipID,
		app.Status,
		app.AppliedAt,
		app.ProfileMatchScore,
		app.CandidateEmail,
		app.CandidateName,
	).Scan(&app.CreatedAt, &app.UpdatedAt); err != nil {
		return nil, err
	}

	return app, nil
}

// UpdateStatus persists a transition only when the row still holds the
// expected status. A nil interviewDate leaves the stored date untouched, so
// the date set by the interviewed transition survives later transitions.
func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, interviewDate *time.Time) (*domain.Application, error) {
	const query = `
	UPDATE applications
	SET status = $3,
		interview_date = COALESCE($4, interview_date),
		updated_at = NOW()
	WHERE id = $1 AND status = $2
	`
	tag, err := r.pool.Exec(ctx, query, id, from, to, interviewDate)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrStaleStatus
	}
	return r.GetByID(ctx, id)
}

func scanApplication(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Application, error) {
	var app domain.Application
	var interviewDate *time.Time

	if err := row.Scan(
		&app.ID,
		&app.CandidateID,
		&app.InternshipID,
		&app.Status,
		&app.AppliedAt,
		&app.ProfileMatchScore,
		&interviewDate,
		&app.CandidateEmail,
		&app.CandidateName,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}

	app.InterviewDate = interviewDate
	return &app, nil
}
