// Package repository provides pgx-backed persistence for customers.
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

var ErrNotFound = errors.New("customer not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Customer struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Phone     string
	Email     *string
	ZipCode   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const customerColumns = `id, first_name, last_name, phone, email, zip_code, created_at, updated_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var customer Customer
	err := row.Scan(
		&customer.ID, &customer.FirstName, &customer.LastName, &customer.Phone,
		&customer.Email, &customer.ZipCode, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, ErrNotFound
	}
	return customer, err
}

type CreateCustomerParams struct {
	FirstName string
	LastName  string
	Phone     string
	Email     *string
	ZipCode   string
}

func (r *Repository) Create(ctx context.Context, params CreateCustomerParams) (Customer, error) {
	return scanCustomer(r.pool.QueryRow(ctx, `
		INSERT INTO customers (first_name, last_name, phone, email, zip_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+customerColumns,
		params.FirstName, params.LastName, params.Phone, params.Email, params.ZipCode,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Customer, error) {
	return scanCustomer(r.pool.QueryRow(ctx, `
		SELECT `+customerColumns+` FROM customers WHERE id = $1
	`, id))
}

type UpdateCustomerParams struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Email     *string
	ZipCode   *string
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateCustomerParams) (Customer, error) {
	return scanCustomer(r.pool.QueryRow(ctx, `
		UPDATE customers SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			phone = COALESCE($4, phone),
			email = COALESCE($5, email),
			zip_code = COALESCE($6, zip_code),
			updated_at = now()
		WHERE id = $1
		RETURNING `+customerColumns,
		id, params.FirstName, params.LastName, params.Phone, params.Email, params.ZipCode,
	))
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type ListParams struct {
	Search string
	Offset int
	Limit  int
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Customer, int, error) {
	where := []string{"true"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Search != "" {
		p := arg("%" + params.Search + "%")
		where = append(where, fmt.Sprintf("(first_name ILIKE %s OR last_name ILIKE %s OR phone ILIKE %s)", p, p, p))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM customers WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE ` + whereClause +
		` ORDER BY created_at DESC LIMIT ` + arg(params.Limit) + ` OFFSET ` + arg(params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, customer)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return customers, total, nil
}
