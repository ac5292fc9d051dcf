// Package service implements the lead workflow: store operations guarded by
// the transition policy, and the conversion orchestrator.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/events"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/domain"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/ports"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/repository"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/transport"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/apperr"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/phone"

	"github.com/google/uuid"
)

type Service struct {
	repo      repository.LeadsRepository
	customers ports.CustomerCreator
	jobs      ports.JobCreator
	bus       events.Bus
}

func New(repo repository.LeadsRepository, customers ports.CustomerCreator, jobs ports.JobCreator, bus events.Bus) *Service {
	return &Service{repo: repo, customers: customers, jobs: jobs, bus: bus}
}

func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	if !domain.IsKnownSituation(domain.Situation(req.Situation)) {
		return transport.LeadResponse{}, apperr.Validation(fmt.Sprintf("unknown situation %q", req.Situation))
	}

	params := repository.CreateLeadParams{
		Name:      req.Name,
		Phone:     phone.NormalizeE164(req.Phone),
		ZipCode:   req.ZipCode,
		Situation: req.Situation,
	}
	if req.Email != "" {
		params.Email = &req.Email
	}

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Phone:     lead.Phone,
		Situation: lead.Situation,
	})

	return toLeadResponse(lead), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}
	return toLeadResponse(lead), nil
}

// UpdateStatus applies a manual status change after the transition policy
// check. The converted status is never reachable through this path; it is
// only written by Convert so status and customer_id cannot drift apart.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateLeadStatusRequest) (transport.LeadResponse, error) {
	target := domain.Status(req.Status)
	if !domain.IsKnownStatus(target) {
		return transport.LeadResponse{}, apperr.Validation(fmt.Sprintf("unknown status %q", req.Status))
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}

	from := domain.Status(current.Status)
	if target == domain.StatusConverted {
		return transport.LeadResponse{}, apperr.InvalidTransition("leads reach converted only through the convert operation")
	}
	if err := checkTransition(from, target); err != nil {
		return transport.LeadResponse{}, err
	}

	lead, err := s.repo.UpdateStatus(ctx, id, string(target))
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}

	_ = s.repo.AddActivity(ctx, id, "status_changed", map[string]interface{}{
		"from": string(from),
		"to":   string(target),
	})

	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
		OldStatus: string(from),
		NewStatus: string(target),
	})

	return toLeadResponse(lead), nil
}

func (s *Service) Assign(ctx context.Context, id uuid.UUID, req transport.AssignLeadRequest) (transport.LeadResponse, error) {
	if !req.AssignedTo.Set {
		return transport.LeadResponse{}, apperr.BadRequest("assignedTo is required (null clears the assignment)")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}

	lead, err := s.repo.UpdateAssignee(ctx, id, req.AssignedTo.Value)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}

	if !equalUUIDPtrs(current.AssignedTo, req.AssignedTo.Value) {
		_ = s.repo.AddActivity(ctx, id, "assigned", map[string]interface{}{
			"from": current.AssignedTo,
			"to":   req.AssignedTo.Value,
		})

		s.bus.Publish(ctx, events.LeadAssigned{
			BaseEvent:     events.NewBaseEvent(),
			LeadID:        id,
			PreviousStaff: current.AssignedTo,
			NewStaff:      req.AssignedTo.Value,
		})
	}

	return toLeadResponse(lead), nil
}

func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, req transport.UpdateLeadNotesRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.UpdateNotes(ctx, id, req.Notes)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}

	_ = s.repo.AddActivity(ctx, id, "notes_updated", nil)

	return toLeadResponse(lead), nil
}

// Update handles the PATCH partial-update payload by dispatching each present
// field group through its tagged path, status first so an illegal transition
// fails the whole request before any other field is touched.
//
// Groups are applied as separate sequential writes, not atomically: if a
// later group fails, earlier groups stay applied and the error reports the
// failing group. Callers that need all-or-nothing behavior must send one
// group per request.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	var resp transport.LeadResponse
	var err error
	applied := false

	if req.Status != nil {
		resp, err = s.UpdateStatus(ctx, id, transport.UpdateLeadStatusRequest{Status: *req.Status})
		if err != nil {
			return transport.LeadResponse{}, err
		}
		applied = true
	}
	if req.AssignedTo.Set {
		resp, err = s.Assign(ctx, id, transport.AssignLeadRequest{AssignedTo: req.AssignedTo})
		if err != nil {
			return transport.LeadResponse{}, err
		}
		applied = true
	}
	if req.Notes != nil {
		resp, err = s.UpdateNotes(ctx, id, transport.UpdateLeadNotesRequest{Notes: req.Notes})
		if err != nil {
			return transport.LeadResponse{}, err
		}
		applied = true
	}

	if !applied {
		return s.GetByID(ctx, id)
	}
	return resp, nil
}

func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	params := repository.ListParams{
		Status:    req.Status,
		Situation: req.Situation,
		Search:    req.Search,
		Offset:    (req.Page - 1) * req.PageSize,
		Limit:     req.PageSize,
	}

	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = toLeadResponse(lead)
	}

	totalPages := (total + req.PageSize - 1) / req.PageSize

	return transport.LeadListResponse{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *Service) ListActivities(ctx context.Context, id uuid.UUID) ([]transport.ActivityResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, mapRepoError(err)
	}

	activities, err := s.repo.ListActivities(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]transport.ActivityResponse, len(activities))
	for i, activity := range activities {
		items[i] = transport.ActivityResponse{
			ID:        activity.ID,
			Action:    activity.Action,
			Meta:      activity.Meta,
			CreatedAt: activity.CreatedAt,
		}
	}
	return items, nil
}

func checkTransition(from, to domain.Status) error {
	if domain.IsTerminal(from) {
		return apperr.InvalidTransition(fmt.Sprintf("lead status %q is terminal", from))
	}
	if !domain.CanTransition(from, to) {
		return apperr.InvalidTransition(fmt.Sprintf("cannot move lead from %q to %q", from, to))
	}
	return nil
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("lead not found")
	}
	return err
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	reachable := domain.ReachableFrom(domain.Status(lead.Status))
	next := make([]string, len(reachable))
	for i, status := range reachable {
		next[i] = string(status)
	}

	return transport.LeadResponse{
		ID:           lead.ID,
		Name:         lead.Name,
		Phone:        lead.Phone,
		Email:        lead.Email,
		ZipCode:      lead.ZipCode,
		Situation:    lead.Situation,
		Status:       lead.Status,
		AssignedTo:   lead.AssignedTo,
		Notes:        lead.Notes,
		CustomerID:   lead.CustomerID,
		CreatedAt:    lead.CreatedAt,
		UpdatedAt:    lead.UpdatedAt,
		ContactedAt:  lead.ContactedAt,
		ConvertedAt:  lead.ConvertedAt,
		NextStatuses: next,
	}
}

func equalUUIDPtrs(a *uuid.UUID, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
