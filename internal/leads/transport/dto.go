// Package transport defines the request/response DTOs for the leads API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
//
// Updates are tagged per field group (status / assignment / notes) instead of
// one bag of optional fields, so a status change cannot sidestep the
// transition policy pre-check.

type CreateLeadRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Phone     string `json:"phone" validate:"required,min=5,max=20"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	ZipCode   string `json:"zipCode,omitempty" validate:"omitempty,max=20"`
	Situation string `json:"situation" validate:"required,oneof=new_system upgrade repair exploring"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted qualified converted lost spam"`
}

type AssignLeadRequest struct {
	AssignedTo OptionalUUID `json:"assignedTo" validate:"-"`
}

type UpdateLeadNotesRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=5000"`
}

// UpdateLeadRequest is the PATCH /leads/:id payload. The service dispatches
// each present field through the corresponding tagged update path.
type UpdateLeadRequest struct {
	Status     *string      `json:"status,omitempty" validate:"omitempty,oneof=new contacted qualified converted lost spam"`
	AssignedTo OptionalUUID `json:"assignedTo,omitempty" validate:"-"`
	Notes      *string      `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

type ConvertLeadRequest struct {
	FirstName      string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName       string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	CreateJob      bool   `json:"createJob,omitempty"`
	JobDescription string `json:"jobDescription,omitempty" validate:"omitempty,max=500"`
}

type ListLeadsRequest struct {
	Status    *string `form:"status" validate:"omitempty,oneof=new contacted qualified converted lost spam"`
	Situation *string `form:"situation" validate:"omitempty,oneof=new_system upgrade repair exploring"`
	Search    string  `form:"search" validate:"max=100"`
	Page      int     `form:"page" validate:"min=0"`
	PageSize  int     `form:"pageSize" validate:"min=0,max=100"`
}

// Response DTOs

type LeadResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Email       *string    `json:"email,omitempty"`
	ZipCode     string     `json:"zipCode,omitempty"`
	Situation   string     `json:"situation"`
	Status      string     `json:"status"`
	AssignedTo  *uuid.UUID `json:"assignedTo,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CustomerID  *uuid.UUID `json:"customerId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ContactedAt *time.Time `json:"contactedAt,omitempty"`
	ConvertedAt *time.Time `json:"convertedAt,omitempty"`
	// NextStatuses lists the statuses reachable from the current one, so the
	// console can offer exactly the permitted actions.
	NextStatuses []string `json:"nextStatuses"`
}

type LeadListResponse struct {
	Items      []LeadResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

type ConvertLeadResponse struct {
	Success    bool       `json:"success"`
	LeadID     uuid.UUID  `json:"lead_id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	JobID      *uuid.UUID `json:"job_id"`
	Message    string     `json:"message"`
}

type ActivityResponse struct {
	ID        uuid.UUID              `json:"id"`
	Action    string                 `json:"action"`
	Meta      map[string]interface{} `json:"meta,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}
