// Package http provides the bearer token gateway middleware and the token lifecycle handlers.
package http

import (
	"context"

	"github.com/allisson/vmadmin/internal/apitoken/domain"
)

// principalKey is a context key type for storing verified principals.
type principalKey struct{}

// WithPrincipal stores a verified principal in the context.
func WithPrincipal(ctx context.Context, principal *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the verified principal from the context.
// Returns (principal, true) if present, or (nil, false) if the request was not authenticated.
func GetPrincipal(ctx context.Context) (*domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*domain.Principal)
	return principal, ok && principal != nil
}
