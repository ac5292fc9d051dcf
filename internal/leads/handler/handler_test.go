package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/events"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/ports"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/repository"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/service"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type stubRepo struct {
	lead repository.Lead
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	if id != r.lead.ID {
		return repository.Lead{}, repository.ErrNotFound
	}
	return r.lead, nil
}

func (r *stubRepo) List(context.Context, repository.ListParams) ([]repository.Lead, int, error) {
	return nil, 0, nil
}

func (r *stubRepo) Create(context.Context, repository.CreateLeadParams) (repository.Lead, error) {
	return repository.Lead{}, nil
}

func (r *stubRepo) UpdateStatus(context.Context, uuid.UUID, string) (repository.Lead, error) {
	return r.lead, nil
}

func (r *stubRepo) UpdateAssignee(context.Context, uuid.UUID, *uuid.UUID) (repository.Lead, error) {
	return r.lead, nil
}

func (r *stubRepo) UpdateNotes(context.Context, uuid.UUID, *string) (repository.Lead, error) {
	return r.lead, nil
}

func (r *stubRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *stubRepo) Convert(_ context.Context, _ uuid.UUID, customerID uuid.UUID) (repository.Lead, error) {
	converted := r.lead
	now := time.Now()
	converted.Status = "converted"
	converted.CustomerID = &customerID
	converted.ConvertedAt = &now
	r.lead = converted
	return converted, nil
}

func (r *stubRepo) AddActivity(context.Context, uuid.UUID, string, map[string]interface{}) error {
	return nil
}

func (r *stubRepo) ListActivities(context.Context, uuid.UUID) ([]repository.Activity, error) {
	return nil, nil
}

var _ repository.LeadsRepository = (*stubRepo)(nil)

type stubCustomers struct {
	lastFirst string
}

func (c *stubCustomers) CreateCustomer(_ context.Context, params ports.CreateCustomerParams) (uuid.UUID, error) {
	c.lastFirst = params.FirstName
	return uuid.New(), nil
}

type stubJobs struct{}

func (stubJobs) CreateJob(context.Context, uuid.UUID, string) (uuid.UUID, error) {
	return uuid.New(), nil
}

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event) {}

func (nopBus) PublishSync(context.Context, events.Event) error { return nil }

func (nopBus) Subscribe(string, events.Handler) {}

func convertTestEngine(t *testing.T) (*gin.Engine, *stubRepo, *stubCustomers) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &stubRepo{
		lead: repository.Lead{
			ID:        uuid.New(),
			Name:      "Jane Smith",
			Phone:     "+15125550147",
			Situation: "repair",
			Status:    "qualified",
		},
	}
	customers := &stubCustomers{}
	svc := service.New(repo, customers, stubJobs{}, nopBus{})

	engine := gin.New()
	h := New(svc, validator.New())
	h.RegisterRoutes(engine.Group("/api/v1/leads"), nil)

	return engine, repo, customers
}

func TestConvertReadsChunkedBody(t *testing.T) {
	engine, repo, customers := convertTestEngine(t)

	// No Content-Length, as with a chunked transfer; the explicit name in
	// the body must still be honored.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads/"+repo.lead.ID.String()+"/convert",
		strings.NewReader(`{"firstName":"Janet","lastName":"Smythe"}`))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if customers.lastFirst != "Janet" {
		t.Fatalf("expected body name honored, customer created as %q", customers.lastFirst)
	}
}

func TestConvertWithoutBodyUsesDefaults(t *testing.T) {
	engine, repo, customers := convertTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads/"+repo.lead.ID.String()+"/convert", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if customers.lastFirst != "Jane" {
		t.Fatalf("expected split lead name, customer created as %q", customers.lastFirst)
	}
}

func TestConvertRejectsMalformedBody(t *testing.T) {
	engine, repo, _ := convertTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads/"+repo.lead.ID.String()+"/convert",
		strings.NewReader(`{"firstName":`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}
