// Package transport defines the request/response DTOs for the customers API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Phone     string `json:"phone" validate:"required,min=5,max=20"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	ZipCode   string `json:"zipCode,omitempty" validate:"omitempty,max=20"`
}

type UpdateCustomerRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	ZipCode   *string `json:"zipCode,omitempty" validate:"omitempty,max=20"`
}

type ListCustomersRequest struct {
	Search   string `form:"search" validate:"max=100"`
	Page     int    `form:"page" validate:"min=0"`
	PageSize int    `form:"pageSize" validate:"min=0,max=100"`
}

type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	ZipCode   string    `json:"zipCode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CustomerListResponse struct {
	Items      []CustomerResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}
