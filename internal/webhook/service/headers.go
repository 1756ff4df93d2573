package service

import (
	"encoding/base64"
	"net/http"

	"github.com/allisson/vmadmin/internal/webhook/domain"
)

// BuildHeaders assembles the request headers: Content-Type, then the auth variant, then
// custom headers, which override anything set before them. Custom headers with an empty
// key or value are skipped.
func BuildHeaders(cfg *domain.Config) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	switch cfg.Auth.Type {
	case domain.AuthBearer:
		if cfg.Auth.Bearer != nil && cfg.Auth.Bearer.Token != "" {
			headers.Set("Authorization", "Bearer "+cfg.Auth.Bearer.Token)
		}
	case domain.AuthAPIKey:
		if cfg.Auth.APIKey != nil && cfg.Auth.APIKey.Header != "" && cfg.Auth.APIKey.Value != "" {
			headers.Set(cfg.Auth.APIKey.Header, cfg.Auth.APIKey.Value)
		}
	case domain.AuthBasic:
		if cfg.Auth.Basic != nil && cfg.Auth.Basic.Username != "" && cfg.Auth.Basic.Password != "" {
			credentials := cfg.Auth.Basic.Username + ":" + cfg.Auth.Basic.Password
			headers.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(credentials)))
		}
	}

	for _, header := range cfg.CustomHeaders {
		if header.Key == "" || header.Value == "" {
			continue
		}
		headers.Set(header.Key, header.Value)
	}

	return headers
}
