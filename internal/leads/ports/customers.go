// Package ports defines the collaborator interfaces the leads module depends
// on. The conversion workflow talks to the customer and job resources only
// through these, keeping the orchestrator decoupled from their modules.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// CreateCustomerParams carries the fields copied from a lead when a
// conversion materializes a customer.
type CreateCustomerParams struct {
	FirstName string
	LastName  string
	Phone     string
	Email     *string
	ZipCode   string
}

// CustomerCreator creates exactly one customer record and returns its id.
type CustomerCreator interface {
	CreateCustomer(ctx context.Context, params CreateCustomerParams) (uuid.UUID, error)
}
