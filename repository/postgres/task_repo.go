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

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `
	id, application_id, title, description, color, status, start_date, end_date,
	submission_link, review_remarks, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT` + taskColumns + `
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) ListByApplication(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR application_id = $1)
	  AND ($2 = '' OR status = $2)
	ORDER BY start_date NULLS LAST, created_at
	LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, filter.ApplicationID, filter.Status, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = domain.TaskPending
	}

	const query = `
	INSERT INTO tasks (id, application_id, title, description, color, status, start_date, end_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.ApplicationID,
		task.Title,
		task.Description,
		task.Color,
		task.Status,
		task.StartDate,
		task.EndDate,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateStatus persists a review-lifecycle change only when the row still
// holds the expected status. Nil link/remarks leave the stored values alone;
// pointers to empty strings overwrite them.
func (r *taskRepository) UpdateStatus(ctx context.Context, id string, change repository.TaskStatusChange) (*domain.Task, error) {
	const query = `
	UPDATE tasks
	SET status = $3,
		submission_link = COALESCE($4, submission_link),
		review_remarks = COALESCE($5, review_remarks),
		updated_at = NOW()
	WHERE id = $1 AND status = $2
	`
	tag, err := r.pool.Exec(ctx, query, id, change.From, change.To, change.SubmissionLink, change.ReviewRemarks)
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

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var start, end *time.Time

	if err := row.Scan(
		&task.ID,
		&task.ApplicationID,
		&task.Title,
		&task.Description,
		&task.Color,
		&task.Status,
		&start,
		&end,
		&task.SubmissionLink,
		&task.ReviewRemarks,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.StartDate = start
	task.EndDate = end
	return &task, nil
}
