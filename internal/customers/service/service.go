// Package service implements customer management.
package service

import (
	"context"
	"errors"

	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/customers/repository"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/customers/transport"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/events"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/apperr"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/phone"

	"github.com/google/uuid"
)

type Service struct {
	repo repository.CustomersRepository
	bus  events.Bus
}

func New(repo repository.CustomersRepository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) Create(ctx context.Context, req transport.CreateCustomerRequest) (transport.CustomerResponse, error) {
	params := repository.CreateCustomerParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     phone.NormalizeE164(req.Phone),
		ZipCode:   req.ZipCode,
	}
	if req.Email != "" {
		params.Email = &req.Email
	}

	customer, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.CustomerResponse{}, err
	}

	s.bus.Publish(ctx, events.CustomerCreated{
		BaseEvent:  events.NewBaseEvent(),
		CustomerID: customer.ID,
		Phone:      customer.Phone,
	})

	return toCustomerResponse(customer), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.CustomerResponse, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CustomerResponse{}, mapRepoError(err)
	}
	return toCustomerResponse(customer), nil
}

// Exists reports whether a customer record exists.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateCustomerRequest) (transport.CustomerResponse, error) {
	params := repository.UpdateCustomerParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		ZipCode:   req.ZipCode,
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}

	customer, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return transport.CustomerResponse{}, mapRepoError(err)
	}
	return toCustomerResponse(customer), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, req transport.ListCustomersRequest) (transport.CustomerListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	customers, total, err := s.repo.List(ctx, repository.ListParams{
		Search: req.Search,
		Offset: (req.Page - 1) * req.PageSize,
		Limit:  req.PageSize,
	})
	if err != nil {
		return transport.CustomerListResponse{}, err
	}

	items := make([]transport.CustomerResponse, len(customers))
	for i, customer := range customers {
		items[i] = toCustomerResponse(customer)
	}

	return transport.CustomerListResponse{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: (total + req.PageSize - 1) / req.PageSize,
	}, nil
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("customer not found")
	}
	return err
}

func toCustomerResponse(customer repository.Customer) transport.CustomerResponse {
	return transport.CustomerResponse{
		ID:        customer.ID,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Phone:     customer.Phone,
		Email:     customer.Email,
		ZipCode:   customer.ZipCode,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}
