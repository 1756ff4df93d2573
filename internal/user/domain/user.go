// Package domain defines the user identity entities consulted when verifying API tokens.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/errors"
)

// Role is the administrative role of a user.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// ApprovalStatus is the outcome of the registration review.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsValid reports whether s is a known approval status.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// User represents a registered operator. Only approved users may use API tokens.
type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Role           Role
	ApprovalStatus ApprovalStatus
	ApprovedAt     *time.Time
	RejectedReason *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsApproved reports whether the user passed the registration review.
func (u *User) IsApproved() bool {
	return u.ApprovalStatus == ApprovalApproved
}

// CreateUserInput contains the data needed to register a user.
type CreateUserInput struct {
	Name  string
	Email string
	Role  Role
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidRole indicates an unknown role.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid user role")

	// ErrInvalidApprovalStatus indicates an unknown approval status.
	ErrInvalidApprovalStatus = errors.Wrap(errors.ErrInvalidInput, "invalid approval status")
)
