// Package customers provides the customer management bounded context module.
package customers

import (
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/customers/handler"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/customers/repository"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/customers/service"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/events"
	apphttp "github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/http"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the customers bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the customers module.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "customers"
}

// Service returns the customers service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts customers routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/customers"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
