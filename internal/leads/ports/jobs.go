package ports

import (
	"context"

	"github.com/google/uuid"
)

// JobCreator creates exactly one job for an existing customer and returns
// the job id.
type JobCreator interface {
	CreateJob(ctx context.Context, customerID uuid.UUID, description string) (uuid.UUID, error)
}
