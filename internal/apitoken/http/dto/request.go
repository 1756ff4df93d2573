// Package dto provides data transfer objects for the API token endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/vmadmin/internal/apitoken/domain"
	"github.com/allisson/vmadmin/internal/apitoken/usecase"
	customValidation "github.com/allisson/vmadmin/internal/validation"
)

// CreateTokenRequest contains the parameters for issuing an API token.
// A missing expires_in_days issues a token that never expires.
type CreateTokenRequest struct {
	Name          string   `json:"name"`
	Permissions   []string `json:"permissions"`
	ExpiresInDays *int     `json:"expires_in_days"`
}

// Validate checks if the create token request is valid.
func (r *CreateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Permissions,
			validation.Each(validation.In(
				string(domain.PermissionWebhookReceive),
				string(domain.PermissionAPIAccess),
			).Error("must be webhook_receive or api_access")),
		),
		validation.Field(&r.ExpiresInDays,
			validation.Max(domain.MaxExpiresInDays),
		),
	)
}

// ToInput converts the request to the use case input.
func (r *CreateTokenRequest) ToInput() usecase.CreateTokenInput {
	permissions := make([]domain.Permission, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		permissions = append(permissions, domain.Permission(p))
	}
	return usecase.CreateTokenInput{
		Name:          r.Name,
		Permissions:   permissions,
		ExpiresInDays: r.ExpiresInDays,
	}
}
