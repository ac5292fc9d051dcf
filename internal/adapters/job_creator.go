package adapters

import (
	"context"

	jobsvc "github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/jobs/service"
	jobtransport "github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/jobs/transport"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/ports"

	"github.com/google/uuid"
)

// JobCreatorAdapter implements ports.JobCreator using the jobs service.
type JobCreatorAdapter struct {
	svc *jobsvc.Service
}

func NewJobCreatorAdapter(svc *jobsvc.Service) *JobCreatorAdapter {
	return &JobCreatorAdapter{svc: svc}
}

func (a *JobCreatorAdapter) CreateJob(ctx context.Context, customerID uuid.UUID, description string) (uuid.UUID, error) {
	job, err := a.svc.Create(ctx, jobtransport.CreateJobRequest{
		CustomerID:  customerID,
		Description: description,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return job.ID, nil
}

var _ ports.JobCreator = (*JobCreatorAdapter)(nil)
