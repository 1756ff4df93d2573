// Package usecase orchestrates the API token lifecycle: issuance, listing, revocation,
// deletion and verification of presented bearer tokens.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/apitoken/domain"
)

// TokenRepository defines persistence operations for API tokens.
type TokenRepository interface {
	// Create stores a new token.
	Create(ctx context.Context, token *domain.APIToken) error

	// ListByOwner returns the owner's tokens newest first without their digests.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.APIToken, error)

	// Get retrieves a token by ID. Returns ErrTokenNotFound if not found.
	Get(ctx context.Context, tokenID uuid.UUID) (*domain.APIToken, error)

	// GetByTokenHash retrieves a token by digest. Returns ErrTokenNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.APIToken, error)

	Deactivate(ctx context.Context, tokenID uuid.UUID) error
	Delete(ctx context.Context, tokenID uuid.UUID) error
	TouchLastUsed(ctx context.Context, tokenHash string, usedAt time.Time) error
}

// IdentityService answers whether a token owner passed the approval review.
type IdentityService interface {
	IsApproved(ctx context.Context, userID uuid.UUID) (bool, error)
}

// CreateTokenInput contains the operator-supplied data for a new token.
// A nil ExpiresInDays issues a token that never expires.
type CreateTokenInput struct {
	Name          string
	Permissions   []domain.Permission
	ExpiresInDays *int
}

// CreateTokenOutput carries the stored metadata plus the raw token. RawToken is returned
// by Create only and cannot be retrieved again.
type CreateTokenOutput struct {
	Token    *domain.APIToken
	RawToken string
}

// TokenUseCase defines the API token lifecycle.
type TokenUseCase interface {
	// Create issues a token for owner. Fails with ErrNotAuthenticated when owner is uuid.Nil.
	Create(ctx context.Context, owner uuid.UUID, input CreateTokenInput) (*CreateTokenOutput, error)

	// List returns the owner's tokens newest first.
	List(ctx context.Context, owner uuid.UUID) ([]*domain.APIToken, error)

	// Revoke deactivates a token owned by owner. The row is kept.
	Revoke(ctx context.Context, owner uuid.UUID, tokenID uuid.UUID) error

	// Delete permanently removes a token owned by owner.
	Delete(ctx context.Context, owner uuid.UUID, tokenID uuid.UUID) error

	// Verify checks a presented raw token and returns the principal it establishes.
	Verify(ctx context.Context, presented string, required domain.Permission) (*domain.Principal, error)
}
