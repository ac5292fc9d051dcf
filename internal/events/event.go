// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/events"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead comes in through intake.
type LeadCreated struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	Phone     string    `json:"phone"`
	Situation string    `json:"situation"`
}

func (e LeadCreated) EventName() string { return "leads.created" }

// LeadStatusChanged is published on every accepted status transition.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// LeadAssigned is published when a lead is assigned to a staff member.
type LeadAssigned struct {
	BaseEvent
	LeadID        uuid.UUID  `json:"leadId"`
	PreviousStaff *uuid.UUID `json:"previousStaff,omitempty"`
	NewStaff      *uuid.UUID `json:"newStaff,omitempty"`
}

func (e LeadAssigned) EventName() string { return "leads.assigned" }

// LeadConverted is published when a lead reaches its terminal converted
// status with a customer (and optionally a job) materialized.
type LeadConverted struct {
	BaseEvent
	LeadID     uuid.UUID  `json:"leadId"`
	CustomerID uuid.UUID  `json:"customerId"`
	JobID      *uuid.UUID `json:"jobId,omitempty"`
}

func (e LeadConverted) EventName() string { return "leads.converted" }

// =============================================================================
// Customers Domain Events
// =============================================================================

// CustomerCreated is published when a customer record is created.
type CustomerCreated struct {
	BaseEvent
	CustomerID uuid.UUID `json:"customerId"`
	Phone      string    `json:"phone"`
}

func (e CustomerCreated) EventName() string { return "customers.created" }

// =============================================================================
// Jobs Domain Events
// =============================================================================

// JobCreated is published when a job record is created for a customer.
type JobCreated struct {
	BaseEvent
	JobID      uuid.UUID `json:"jobId"`
	CustomerID uuid.UUID `json:"customerId"`
}

func (e JobCreated) EventName() string { return "jobs.created" }
