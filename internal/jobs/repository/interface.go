package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobsRepository defines the complete interface for jobs data operations.
type JobsRepository interface {
	Create(ctx context.Context, params CreateJobParams) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, scheduledAt *time.Time) (Job, error)
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) (Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) ([]Job, int, error)
}

var _ JobsRepository = (*Repository)(nil)
