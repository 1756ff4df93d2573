package domain

import (
	"github.com/allisson/vmadmin/internal/errors"
)

// API token errors.
var (
	// ErrTokenNotFound indicates no token matches the id or digest.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "api token not found")

	// ErrMalformedToken indicates the presented token lacks the marker or is too short.
	ErrMalformedToken = errors.Wrap(errors.ErrUnauthorized, "malformed api token")

	// ErrTokenInactive indicates the token was revoked.
	ErrTokenInactive = errors.Wrap(errors.ErrUnauthorized, "api token is inactive")

	// ErrTokenExpired indicates the token expiry has passed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "api token has expired")

	// ErrNotAuthenticated indicates an operation was attempted without an owner identity.
	ErrNotAuthenticated = errors.Wrap(errors.ErrUnauthorized, "authentication required")

	// ErrInsufficientPermission indicates the token lacks the permission the route requires.
	ErrInsufficientPermission = errors.Wrap(errors.ErrForbidden, "api token lacks required permission")

	// ErrOwnerNotApproved indicates the token owner's approval status is not approved.
	ErrOwnerNotApproved = errors.Wrap(errors.ErrForbidden, "token owner is not approved")

	// ErrInvalidPermission indicates an unknown permission was requested at creation.
	ErrInvalidPermission = errors.Wrap(errors.ErrInvalidInput, "unknown permission")
)
