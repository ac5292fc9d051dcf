package service

import (
	"context"
	"testing"
	"time"

	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/customers/repository"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/customers/transport"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/events"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/apperr"

	"github.com/google/uuid"
)

type fakeRepo struct {
	customers map[uuid.UUID]repository.Customer
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{customers: make(map[uuid.UUID]repository.Customer)}
}

func (r *fakeRepo) Create(_ context.Context, params repository.CreateCustomerParams) (repository.Customer, error) {
	now := time.Now()
	customer := repository.Customer{
		ID:        uuid.New(),
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
		Email:     params.Email,
		ZipCode:   params.ZipCode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.customers[customer.ID] = customer
	return customer, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return repository.Customer{}, repository.ErrNotFound
	}
	return customer, nil
}

func (r *fakeRepo) Update(_ context.Context, id uuid.UUID, params repository.UpdateCustomerParams) (repository.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return repository.Customer{}, repository.ErrNotFound
	}
	if params.FirstName != nil {
		customer.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		customer.LastName = *params.LastName
	}
	if params.Phone != nil {
		customer.Phone = *params.Phone
	}
	if params.Email != nil {
		customer.Email = params.Email
	}
	if params.ZipCode != nil {
		customer.ZipCode = *params.ZipCode
	}
	customer.UpdatedAt = time.Now()
	r.customers[id] = customer
	return customer, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ repository.ListParams) ([]repository.Customer, int, error) {
	items := make([]repository.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		items = append(items, customer)
	}
	return items, len(items), nil
}

var _ repository.CustomersRepository = (*fakeRepo)(nil)

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func TestCreateNormalizesPhoneAndPublishes(t *testing.T) {
	repo := newFakeRepo()
	bus := &recordingBus{}
	svc := New(repo, bus)

	customer, err := svc.Create(context.Background(), transport.CreateCustomerRequest{
		FirstName: "Jane",
		LastName:  "Smith",
		Phone:     "(512) 555-0147",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if customer.Phone != "+15125550147" {
		t.Errorf("expected normalized phone, got %q", customer.Phone)
	}
	if len(bus.published) != 1 {
		t.Errorf("expected CustomerCreated event, got %d events", len(bus.published))
	}
}

func TestExists(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &recordingBus{})
	ctx := context.Background()

	customer, err := svc.Create(ctx, transport.CreateCustomerRequest{FirstName: "Jane", Phone: "+15125550147"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	exists, err := svc.Exists(ctx, customer.ID)
	if err != nil || !exists {
		t.Errorf("expected existing customer, got exists=%v err=%v", exists, err)
	}

	exists, err = svc.Exists(ctx, uuid.New())
	if err != nil || exists {
		t.Errorf("expected missing customer, got exists=%v err=%v", exists, err)
	}
}

func TestGetByIDUnknownCustomer(t *testing.T) {
	svc := New(newFakeRepo(), &recordingBus{})

	_, err := svc.GetByID(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &recordingBus{})
	ctx := context.Background()

	customer, err := svc.Create(ctx, transport.CreateCustomerRequest{
		FirstName: "Jane",
		LastName:  "Smith",
		Phone:     "+15125550147",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	last := "Smythe"
	updated, err := svc.Update(ctx, customer.ID, transport.UpdateCustomerRequest{LastName: &last})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.LastName != "Smythe" || updated.FirstName != "Jane" {
		t.Errorf("expected only lastName changed, got %+v", updated)
	}
}
