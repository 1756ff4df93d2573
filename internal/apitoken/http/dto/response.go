package dto

import (
	"time"

	"github.com/allisson/vmadmin/internal/apitoken/domain"
)

// TokenResponse represents token metadata in API responses. The digest is never exposed.
type TokenResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	TokenPrefix string              `json:"token_prefix"`
	Permissions []domain.Permission `json:"permissions"`
	ExpiresAt   *time.Time          `json:"expires_at"`
	LastUsedAt  *time.Time          `json:"last_used_at"`
	IsActive    bool                `json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
}

// MapTokenToResponse converts a domain token to an API response.
func MapTokenToResponse(token *domain.APIToken) TokenResponse {
	return TokenResponse{
		ID:          token.ID.String(),
		Name:        token.Name,
		TokenPrefix: token.TokenPrefix,
		Permissions: token.Permissions,
		ExpiresAt:   token.ExpiresAt,
		LastUsedAt:  token.LastUsedAt,
		IsActive:    token.IsActive,
		CreatedAt:   token.CreatedAt,
	}
}

// ListTokensResponse represents the caller's tokens in API responses.
type ListTokensResponse struct {
	Data []TokenResponse `json:"data"`
}

// MapTokensToListResponse converts a slice of domain tokens to a list API response.
func MapTokensToListResponse(tokens []*domain.APIToken) ListTokensResponse {
	data := make([]TokenResponse, 0, len(tokens))
	for _, token := range tokens {
		data = append(data, MapTokenToResponse(token))
	}
	return ListTokensResponse{Data: data}
}

// CreateTokenResponse contains the issued token.
// SECURITY: Token is only returned once and must be saved securely.
type CreateTokenResponse struct {
	TokenResponse
	Token string `json:"token"` //nolint:gosec // returned once on creation
}

// AccessResponse is returned by the access probe for a verified token.
type AccessResponse struct {
	Authorized  bool                `json:"authorized"`
	TokenID     string              `json:"token_id"`
	OwnerID     string              `json:"owner_id"`
	Permissions []domain.Permission `json:"permissions"`
}

// MapPrincipalToAccessResponse converts a verified principal to an access probe response.
func MapPrincipalToAccessResponse(principal *domain.Principal) AccessResponse {
	return AccessResponse{
		Authorized:  true,
		TokenID:     principal.TokenID.String(),
		OwnerID:     principal.OwnerID.String(),
		Permissions: principal.Permissions,
	}
}
