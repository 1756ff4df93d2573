// Package domain defines the product catalog entities exposed to vending machines and
// announced to webhook subscribers.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/errors"
)

// ProductStatus controls whether a product is offered.
type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
)

// IsValid reports whether s is a known status.
func (s ProductStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Toggled returns the opposite status.
func (s ProductStatus) Toggled() ProductStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// Action names the catalog mutation that triggered a notification.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionStatusToggle Action = "status_toggle"
)

// Product is a catalog item.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Price       float64
	Stock       int
	Status      ProductStatus
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the product is currently offered.
func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}

// ProductInput carries the writable fields of a product. An empty Status defaults to active.
type ProductInput struct {
	Name        string
	Description *string
	Price       float64
	Stock       int
	Status      ProductStatus
	ImageURL    *string
}

// Catalog errors.
var (
	// ErrProductNotFound indicates no product matches the id.
	ErrProductNotFound = errors.Wrap(errors.ErrNotFound, "product not found")

	// ErrInvalidProductStatus indicates a status outside active/inactive.
	ErrInvalidProductStatus = errors.Wrap(errors.ErrInvalidInput, "invalid product status")
)
