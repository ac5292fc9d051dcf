// Package adapters wires bounded contexts together through the ports each
// context defines, so no context imports another's service layer directly.
package adapters

import (
	"context"

	customersvc "github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/customers/service"
	customertransport "github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/customers/transport"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/ports"

	"github.com/google/uuid"
)

// CustomerCreatorAdapter implements ports.CustomerCreator using the
// customers service, so lead conversion goes through the same code path as
// a directly created customer (phone normalization, events).
type CustomerCreatorAdapter struct {
	svc *customersvc.Service
}

func NewCustomerCreatorAdapter(svc *customersvc.Service) *CustomerCreatorAdapter {
	return &CustomerCreatorAdapter{svc: svc}
}

func (a *CustomerCreatorAdapter) CreateCustomer(ctx context.Context, params ports.CreateCustomerParams) (uuid.UUID, error) {
	req := customertransport.CreateCustomerRequest{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
		ZipCode:   params.ZipCode,
	}
	if params.Email != nil {
		req.Email = *params.Email
	}

	customer, err := a.svc.Create(ctx, req)
	if err != nil {
		return uuid.Nil, err
	}
	return customer.ID, nil
}

var _ ports.CustomerCreator = (*CustomerCreatorAdapter)(nil)
