// Package dto provides data transfer objects for the webhook configuration endpoints.
package dto

import (
	"github.com/allisson/vmadmin/internal/webhook/domain"
)

// AuthRequest is the flat wire form of the auth variant.
type AuthRequest struct {
	Type     string `json:"type"`
	Token    string `json:"token,omitempty"`
	Header   string `json:"header,omitempty"`
	Value    string `json:"value,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// HeaderRequest is one custom header.
type HeaderRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// WebhookConfigRequest contains a complete webhook configuration. Omitted optional
// fields take the documented defaults.
type WebhookConfigRequest struct {
	URL           string          `json:"url"`
	Method        string          `json:"method"`
	Auth          AuthRequest     `json:"auth"`
	CustomHeaders []HeaderRequest `json:"custom_headers"`
	Timeout       *int            `json:"timeout"`
	Retries       *int            `json:"retries"`
	BodyTemplate  *string         `json:"body_template"`
	VerifySSL     *bool           `json:"verify_ssl"`
}

// ToDomain converts the request to a configuration. Validation happens in the use case.
func (r *WebhookConfigRequest) ToDomain() *domain.Config {
	cfg := domain.DefaultConfig()
	cfg.URL = r.URL
	if r.Method != "" {
		cfg.Method = r.Method
	}
	cfg.Auth = r.Auth.toDomain()
	for _, header := range r.CustomHeaders {
		cfg.CustomHeaders = append(cfg.CustomHeaders, domain.CustomHeader{Key: header.Key, Value: header.Value})
	}
	if r.Timeout != nil {
		cfg.Timeout = *r.Timeout
	}
	if r.Retries != nil {
		cfg.Retries = *r.Retries
	}
	if r.BodyTemplate != nil {
		cfg.BodyTemplate = *r.BodyTemplate
	}
	if r.VerifySSL != nil {
		cfg.VerifySSL = *r.VerifySSL
	}
	return cfg
}

func (a AuthRequest) toDomain() domain.Auth {
	auth := domain.Auth{Type: domain.AuthType(a.Type)}
	switch auth.Type {
	case "":
		auth.Type = domain.AuthNone
	case domain.AuthBearer:
		auth.Bearer = &domain.BearerAuth{Token: a.Token}
	case domain.AuthAPIKey:
		auth.APIKey = &domain.APIKeyAuth{Header: a.Header, Value: a.Value}
	case domain.AuthBasic:
		auth.Basic = &domain.BasicAuth{Username: a.Username, Password: a.Password}
	}
	return auth
}
