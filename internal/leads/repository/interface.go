package repository

import (
	"context"

	"github.com/google/uuid"
)

// =====================================
// Segregated Interfaces (Interface Segregation Principle)
// =====================================

// LeadReader provides read-only access to lead data.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
}

// LeadWriter provides write operations for lead management. Writers apply
// values as given; the transition policy is enforced by the service layer
// before any of these are called.
type LeadWriter interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Lead, error)
	UpdateAssignee(ctx context.Context, id uuid.UUID, assignedTo *uuid.UUID) (Lead, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) (Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LeadConverter finalizes a conversion with the conditional single-writer
// update tying status, customer_id and converted_at together.
type LeadConverter interface {
	Convert(ctx context.Context, id uuid.UUID, customerID uuid.UUID) (Lead, error)
}

// ActivityLogger records activity/audit trail on leads.
type ActivityLogger interface {
	AddActivity(ctx context.Context, leadID uuid.UUID, action string, meta map[string]interface{}) error
	ListActivities(ctx context.Context, leadID uuid.UUID) ([]Activity, error)
}

// =====================================
// Composite Interface
// =====================================

// LeadsRepository defines the complete interface for leads data operations.
// Composed of smaller, focused interfaces for better testability and flexibility.
type LeadsRepository interface {
	LeadReader
	LeadWriter
	LeadConverter
	ActivityLogger
}

// Ensure Repository implements LeadsRepository
var _ LeadsRepository = (*Repository)(nil)
