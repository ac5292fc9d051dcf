// Package repository provides pgx-backed persistence for the leads bounded context.
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

var (
	ErrNotFound = errors.New("lead not found")
	// ErrConversionConflict is returned when the conditional conversion
	// update matched no row for an existing lead: the lead was no longer
	// qualified, or another conversion already recorded a customer.
	ErrConversionConflict = errors.New("lead is not qualified or already converted")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID          uuid.UUID
	Name        string
	Phone       string
	Email       *string
	ZipCode     string
	Situation   string
	Status      string
	AssignedTo  *uuid.UUID
	Notes       *string
	CustomerID  *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ContactedAt *time.Time
	ConvertedAt *time.Time
}

const leadColumns = `id, name, phone, email, zip_code, situation, status,
	assigned_to, notes, customer_id, created_at, updated_at, contacted_at, converted_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.ZipCode,
		&lead.Situation, &lead.Status, &lead.AssignedTo, &lead.Notes,
		&lead.CustomerID, &lead.CreatedAt, &lead.UpdatedAt,
		&lead.ContactedAt, &lead.ConvertedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

type CreateLeadParams struct {
	Name      string
	Phone     string
	Email     *string
	ZipCode   string
	Situation string
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, phone, email, zip_code, situation, status)
		VALUES ($1, $2, $3, $4, $5, 'new')
		RETURNING `+leadColumns,
		params.Name, params.Phone, params.Email, params.ZipCode, params.Situation,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE id = $1
	`, id))
}

// UpdateStatus applies a status value without consulting the transition
// policy; callers must pre-validate the transition. The first move to
// contacted stamps contacted_at; contacted_at is never overwritten after.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads SET
			status = $2,
			contacted_at = CASE WHEN $2 = 'contacted' AND contacted_at IS NULL THEN now() ELSE contacted_at END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, status,
	))
}

func (r *Repository) UpdateAssignee(ctx context.Context, id uuid.UUID, assignedTo *uuid.UUID) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads SET assigned_to = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, assignedTo,
	))
}

func (r *Repository) UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads SET notes = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, notes,
	))
}

// Convert finalizes a conversion in a single conditional update: status,
// customer_id and converted_at change together, and only while the lead is
// still qualified with no customer recorded. This is the single-writer
// guard — of two racing conversions at most one can match the row.
func (r *Repository) Convert(ctx context.Context, id uuid.UUID, customerID uuid.UUID) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads SET
			status = 'converted',
			customer_id = $2,
			converted_at = now(),
			updated_at = now()
		WHERE id = $1 AND status = 'qualified' AND customer_id IS NULL
		RETURNING `+leadColumns,
		id, customerID,
	))
	if errors.Is(err, ErrNotFound) {
		// Distinguish a missing lead from a lost race.
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return Lead{}, ErrConversionConflict
		}
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type ListParams struct {
	Status    *string
	Situation *string
	Search    string
	Offset    int
	Limit     int
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	where := []string{"true"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Status != nil {
		where = append(where, "status = "+arg(*params.Status))
	}
	if params.Situation != nil {
		where = append(where, "situation = "+arg(*params.Situation))
	}
	if params.Search != "" {
		p := arg("%" + params.Search + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR phone ILIKE %s OR zip_code ILIKE %s)", p, p, p))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM leads WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE ` + whereClause +
		` ORDER BY created_at DESC LIMIT ` + arg(params.Limit) + ` OFFSET ` + arg(params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return leads, total, nil
}
