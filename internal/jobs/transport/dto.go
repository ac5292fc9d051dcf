// Package transport defines the request/response DTOs for the jobs API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	CustomerID  uuid.UUID `json:"customerId" validate:"required"`
	Description string    `json:"description" validate:"required,min=1,max=500"`
}

type UpdateJobStatusRequest struct {
	Status      string     `json:"status" validate:"required,oneof=open scheduled completed canceled"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

type UpdateJobRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
}

type ListJobsRequest struct {
	CustomerID *uuid.UUID `form:"customerId"`
	Status     *string    `form:"status" validate:"omitempty,oneof=open scheduled completed canceled"`
	Page       int        `form:"page" validate:"min=0"`
	PageSize   int        `form:"pageSize" validate:"min=0,max=100"`
}

type JobResponse struct {
	ID          uuid.UUID  `json:"id"`
	CustomerID  uuid.UUID  `json:"customerId"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type JobListResponse struct {
	Items      []JobResponse `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}
