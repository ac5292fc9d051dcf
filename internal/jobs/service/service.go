// Package service implements job management for customers.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/events"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/jobs/domain"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/jobs/repository"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/jobs/transport"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/apperr"

	"github.com/google/uuid"
)

// CustomerChecker verifies a customer exists before a job is attached to it.
type CustomerChecker interface {
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo      repository.JobsRepository
	customers CustomerChecker
	bus       events.Bus
}

func New(repo repository.JobsRepository, customers CustomerChecker, bus events.Bus) *Service {
	return &Service{repo: repo, customers: customers, bus: bus}
}

func (s *Service) Create(ctx context.Context, req transport.CreateJobRequest) (transport.JobResponse, error) {
	if s.customers != nil {
		exists, err := s.customers.CustomerExists(ctx, req.CustomerID)
		if err != nil {
			return transport.JobResponse{}, err
		}
		if !exists {
			return transport.JobResponse{}, apperr.NotFound("customer not found")
		}
	}

	job, err := s.repo.Create(ctx, repository.CreateJobParams{
		CustomerID:  req.CustomerID,
		Description: req.Description,
	})
	if err != nil {
		return transport.JobResponse{}, err
	}

	s.bus.Publish(ctx, events.JobCreated{
		BaseEvent:  events.NewBaseEvent(),
		JobID:      job.ID,
		CustomerID: job.CustomerID,
	})

	return toJobResponse(job), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.JobResponse, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.JobResponse{}, mapRepoError(err)
	}
	return toJobResponse(job), nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateJobStatusRequest) (transport.JobResponse, error) {
	if !domain.IsKnownStatus(domain.Status(req.Status)) {
		return transport.JobResponse{}, apperr.Validation(fmt.Sprintf("unknown status %q", req.Status))
	}

	job, err := s.repo.UpdateStatus(ctx, id, req.Status, req.ScheduledAt)
	if err != nil {
		return transport.JobResponse{}, mapRepoError(err)
	}
	return toJobResponse(job), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateJobRequest) (transport.JobResponse, error) {
	if req.Description == nil {
		return s.GetByID(ctx, id)
	}

	job, err := s.repo.UpdateDescription(ctx, id, *req.Description)
	if err != nil {
		return transport.JobResponse{}, mapRepoError(err)
	}
	return toJobResponse(job), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, req transport.ListJobsRequest) (transport.JobListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	jobs, total, err := s.repo.List(ctx, repository.ListParams{
		CustomerID: req.CustomerID,
		Status:     req.Status,
		Offset:     (req.Page - 1) * req.PageSize,
		Limit:      req.PageSize,
	})
	if err != nil {
		return transport.JobListResponse{}, err
	}

	items := make([]transport.JobResponse, len(jobs))
	for i, job := range jobs {
		items[i] = toJobResponse(job)
	}

	return transport.JobListResponse{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: (total + req.PageSize - 1) / req.PageSize,
	}, nil
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("job not found")
	}
	return err
}

func toJobResponse(job repository.Job) transport.JobResponse {
	return transport.JobResponse{
		ID:          job.ID,
		CustomerID:  job.CustomerID,
		Description: job.Description,
		Status:      job.Status,
		ScheduledAt: job.ScheduledAt,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}
