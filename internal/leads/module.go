// Package leads provides the lead lifecycle bounded context module:
// intake, pipeline management, and conversion into customers and jobs.
package leads

import (
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/events"
	apphttp "github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/http"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/handler"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/ports"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/repository"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/service"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module. The customer and job
// creators come from the customers and jobs modules through adapters, so the
// conversion orchestrator never imports another bounded context directly.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, customers ports.CustomerCreator, jobs ports.JobCreator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, customers, jobs, eventBus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the leads service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context. The
// public intake route (POST /leads) is rate limited per client IP.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/leads")

	if ctx.IntakeRateLimiter != nil {
		m.handler.RegisterRoutes(group, ctx.IntakeRateLimiter.Middleware())
		return
	}
	m.handler.RegisterRoutes(group, nil)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
