// Package domain defines API token entities, permissions and the errors raised while
// issuing and verifying them.
package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// APIToken is the stored metadata of an issued bearer credential. The raw token is never
// part of it; TokenHash is the SHA-256 hex digest of the raw token.
type APIToken struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	TokenHash   string
	TokenPrefix string
	Permissions []Permission
	ExpiresAt   *time.Time
	LastUsedAt  *time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsExpired reports whether the token has an expiry at or before now.
func (t *APIToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && !t.ExpiresAt.After(now)
}

// HasPermission reports whether p was granted to the token.
func (t *APIToken) HasPermission(p Permission) bool {
	return slices.Contains(t.Permissions, p)
}

// Principal is the identity established by a successfully verified token.
type Principal struct {
	TokenID     uuid.UUID
	OwnerID     uuid.UUID
	Permissions []Permission
}

// IsWellFormed reports whether raw carries the marker and the minimum length.
// It is checked before any store lookup.
func IsWellFormed(raw string) bool {
	return strings.HasPrefix(raw, TokenMarker) && len(raw) >= TokenLength
}

// DisplayPrefix derives the non-secret prefix shown to operators from a raw token.
func DisplayPrefix(raw string) string {
	rest := strings.TrimPrefix(raw, TokenMarker)
	if len(rest) > DisplayPrefixChars {
		rest = rest[:DisplayPrefixChars]
	}
	return TokenMarker + rest
}
