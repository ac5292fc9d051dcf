package repository

import (
	"context"

	"github.com/google/uuid"
)

// CustomersRepository defines the complete interface for customer data
// operations, allowing the service to be tested against a fake.
type CustomersRepository interface {
	Create(ctx context.Context, params CreateCustomerParams) (Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (Customer, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateCustomerParams) (Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) ([]Customer, int, error)
}

var _ CustomersRepository = (*Repository)(nil)
