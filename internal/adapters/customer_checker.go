package adapters

import (
	"context"

	customersvc "github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/customers/service"
	jobsvc "github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/jobs/service"

	"github.com/google/uuid"
)

// CustomerCheckerAdapter implements the jobs service's CustomerChecker using
// the customers service.
type CustomerCheckerAdapter struct {
	svc *customersvc.Service
}

func NewCustomerCheckerAdapter(svc *customersvc.Service) *CustomerCheckerAdapter {
	return &CustomerCheckerAdapter{svc: svc}
}

func (a *CustomerCheckerAdapter) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return a.svc.Exists(ctx, id)
}

var _ jobsvc.CustomerChecker = (*CustomerCheckerAdapter)(nil)
