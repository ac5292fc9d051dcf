// Package jobs provides the job management bounded context module.
package jobs

import (
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/events"
	apphttp "github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/http"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/jobs/handler"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/jobs/repository"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/jobs/service"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the jobs bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the jobs module. The customer checker
// guards direct job creation against unknown customers; it may be nil for
// tests.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, customers service.CustomerChecker) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, customers, eventBus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "jobs"
}

// Service returns the jobs service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts jobs routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/jobs"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
