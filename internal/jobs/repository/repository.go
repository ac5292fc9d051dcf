// Package repository provides pgx-backed persistence for jobs.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("job not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Job struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	Description string
	Status      string
	ScheduledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const jobColumns = `id, customer_id, description, status, scheduled_at, created_at, updated_at`

func scanJob(row pgx.Row) (Job, error) {
	var job Job
	err := row.Scan(
		&job.ID, &job.CustomerID, &job.Description, &job.Status,
		&job.ScheduledAt, &job.CreatedAt, &job.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	return job, err
}

type CreateJobParams struct {
	CustomerID  uuid.UUID
	Description string
}

func (r *Repository) Create(ctx context.Context, params CreateJobParams) (Job, error) {
	return scanJob(r.pool.QueryRow(ctx, `
		INSERT INTO jobs (customer_id, description, status)
		VALUES ($1, $2, 'open')
		RETURNING `+jobColumns,
		params.CustomerID, params.Description,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	return scanJob(r.pool.QueryRow(ctx, `
		SELECT `+jobColumns+` FROM jobs WHERE id = $1
	`, id))
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, scheduledAt *time.Time) (Job, error) {
	return scanJob(r.pool.QueryRow(ctx, `
		UPDATE jobs SET
			status = $2,
			scheduled_at = COALESCE($3, scheduled_at),
			updated_at = now()
		WHERE id = $1
		RETURNING `+jobColumns,
		id, status, scheduledAt,
	))
}

func (r *Repository) UpdateDescription(ctx context.Context, id uuid.UUID, description string) (Job, error) {
	return scanJob(r.pool.QueryRow(ctx, `
		UPDATE jobs SET description = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+jobColumns,
		id, description,
	))
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type ListParams struct {
	CustomerID *uuid.UUID
	Status     *string
	Offset     int
	Limit      int
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Job, int, error) {
	where := []string{"true"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.CustomerID != nil {
		where = append(where, "customer_id = "+arg(*params.CustomerID))
	}
	if params.Status != nil {
		where = append(where, "status = "+arg(*params.Status))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM jobs WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE ` + whereClause +
		` ORDER BY created_at DESC LIMIT ` + arg(params.Limit) + ` OFFSET ` + arg(params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return jobs, total, nil
}
