package dto

import (
	"github.com/allisson/vmadmin/internal/webhook/domain"
)

// WebhookConfigResponse represents the configuration in API responses. Credential
// values are redacted.
type WebhookConfigResponse struct {
	Configured    bool            `json:"configured"`
	URL           string          `json:"url"`
	Method        string          `json:"method"`
	Auth          AuthRequest     `json:"auth"`
	CustomHeaders []HeaderRequest `json:"custom_headers"`
	Timeout       int             `json:"timeout"`
	Retries       int             `json:"retries"`
	BodyTemplate  string          `json:"body_template"`
	VerifySSL     bool            `json:"verify_ssl"`
}

// MapConfigToResponse converts a configuration to an API response.
func MapConfigToResponse(cfg *domain.Config, configured bool) WebhookConfigResponse {
	headers := make([]HeaderRequest, 0, len(cfg.CustomHeaders))
	for _, header := range cfg.CustomHeaders {
		headers = append(headers, HeaderRequest{Key: header.Key, Value: header.Value})
	}

	auth := AuthRequest{Type: string(cfg.Auth.Type)}
	switch {
	case cfg.Auth.Bearer != nil:
		auth.Token = domain.RedactedSecret
	case cfg.Auth.APIKey != nil:
		auth.Header = cfg.Auth.APIKey.Header
		auth.Value = domain.RedactedSecret
	case cfg.Auth.Basic != nil:
		auth.Username = cfg.Auth.Basic.Username
		auth.Password = domain.RedactedSecret
	}

	return WebhookConfigResponse{
		Configured:    configured,
		URL:           cfg.URL,
		Method:        cfg.Method,
		Auth:          auth,
		CustomHeaders: headers,
		Timeout:       cfg.Timeout,
		Retries:       cfg.Retries,
		BodyTemplate:  cfg.BodyTemplate,
		VerifySSL:     cfg.VerifySSL,
	}
}

// TestWebhookResponse reports the outcome of a test delivery.
type TestWebhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
