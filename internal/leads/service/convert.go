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

	"github.com/google/uuid"
)

// Convert executes the terminal transition out of qualified: create a
// customer from the lead, optionally create a job for that customer, then
// finalize the lead in one conditional update.
//
// The three steps are strictly sequential. Customer-creation failure leaves
// the lead untouched. Any failure after the customer exists is a partial
// conversion: the customer is not rolled back, the error names its id, and
// retrying blindly would create a duplicate — reconciliation is manual.
func (s *Service) Convert(ctx context.Context, leadID uuid.UUID, req transport.ConvertLeadRequest) (transport.ConvertLeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return transport.ConvertLeadResponse{}, mapRepoError(err)
	}

	if domain.Status(lead.Status) != domain.StatusQualified {
		return transport.ConvertLeadResponse{}, apperr.InvalidTransition(
			fmt.Sprintf("only qualified leads can be converted; lead is %q", lead.Status))
	}

	firstName, lastName := req.FirstName, req.LastName
	if firstName == "" && lastName == "" {
		firstName, lastName = domain.SplitName(lead.Name)
	}

	customerID, err := s.customers.CreateCustomer(ctx, ports.CreateCustomerParams{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     lead.Phone,
		Email:     lead.Email,
		ZipCode:   lead.ZipCode,
	})
	if err != nil {
		// Clean failure: nothing was created, the lead stays qualified.
		if kind := apperr.GetKind(err); kind != apperr.KindUnknown {
			return transport.ConvertLeadResponse{}, apperr.Wrap(kind, "customer creation failed", err)
		}
		return transport.ConvertLeadResponse{}, apperr.Unavailable("customer creation failed", err)
	}

	var jobID *uuid.UUID
	if req.CreateJob {
		description := req.JobDescription
		if description == "" {
			description = domain.DefaultJobDescription(domain.Situation(lead.Situation))
		}
		if description != "" {
			id, err := s.jobs.CreateJob(ctx, customerID, description)
			if err != nil {
				return transport.ConvertLeadResponse{}, apperr.PartialConversion(
					fmt.Sprintf("job creation failed; customer %s was created and needs manual reconciliation", customerID), err)
			}
			jobID = &id
		}
	}

	converted, err := s.repo.Convert(ctx, leadID, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrConversionConflict) {
			return transport.ConvertLeadResponse{}, apperr.PartialConversion(
				fmt.Sprintf("lead was changed by another operation; customer %s was created and needs manual reconciliation", customerID), err)
		}
		return transport.ConvertLeadResponse{}, apperr.PartialConversion(
			fmt.Sprintf("lead update failed; customer %s was created and needs manual reconciliation", customerID), err)
	}

	_ = s.repo.AddActivity(ctx, leadID, "converted", map[string]interface{}{
		"customerId": customerID,
		"jobId":      jobID,
	})

	s.bus.Publish(ctx, events.LeadConverted{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     converted.ID,
		CustomerID: customerID,
		JobID:      jobID,
	})

	message := "lead converted to customer"
	if jobID != nil {
		message = "lead converted to customer with job"
	}

	return transport.ConvertLeadResponse{
		Success:    true,
		LeadID:     converted.ID,
		CustomerID: customerID,
		JobID:      jobID,
		Message:    message,
	}, nil
}
