// Package domain defines the webhook configuration, the notification envelope and the
// events announced to the configured endpoint.
package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/vmadmin/internal/validation"
)

// AuthType selects how requests to the webhook endpoint authenticate.
type AuthType string

const (
	AuthNone   AuthType = "none"
	AuthBearer AuthType = "bearer"
	AuthAPIKey AuthType = "apikey"
	AuthBasic  AuthType = "basic"
)

// Supported request methods.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)

// Defaults applied when no configuration has been saved.
const (
	DefaultMethod       = MethodPost
	DefaultTimeout      = 30
	DefaultRetries      = 3
	DefaultBodyTemplate = `{
  "event": "{{event_type}}",
  "timestamp": "{{timestamp}}",
  "data": {{data}}
}`
)

// BearerAuth sends "Authorization: Bearer <token>".
type BearerAuth struct {
	Token string `json:"token"`
}

// APIKeyAuth sends the value under a caller-chosen header.
type APIKeyAuth struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// BasicAuth sends HTTP basic credentials.
type BasicAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Auth is a tagged variant: Type selects which of the credential fields is meaningful.
type Auth struct {
	Type   AuthType    `json:"type"`
	Bearer *BearerAuth `json:"bearer,omitempty"`
	APIKey *APIKeyAuth `json:"apikey,omitempty"`
	Basic  *BasicAuth  `json:"basic,omitempty"`
}

// RedactedSecret stands in for credential values whenever a configuration is displayed.
const RedactedSecret = "********"

// Redacted reports whether the credential of the selected variant is RedactedSecret.
func (a Auth) Redacted() bool {
	switch a.Type {
	case AuthBearer:
		return a.Bearer != nil && a.Bearer.Token == RedactedSecret
	case AuthAPIKey:
		return a.APIKey != nil && a.APIKey.Value == RedactedSecret
	case AuthBasic:
		return a.Basic != nil && a.Basic.Password == RedactedSecret
	}
	return false
}

// WithSecretFrom returns a copy of a carrying the credential held by stored. The
// non-secret fields of a (api key header, basic username) are kept. ok is false when
// stored has no credential for the same auth type.
func (a Auth) WithSecretFrom(stored Auth) (Auth, bool) {
	if a.Type != stored.Type {
		return a, false
	}
	restored := Auth{Type: a.Type}
	switch a.Type {
	case AuthBearer:
		if a.Bearer == nil || stored.Bearer == nil {
			return a, false
		}
		restored.Bearer = &BearerAuth{Token: stored.Bearer.Token}
	case AuthAPIKey:
		if a.APIKey == nil || stored.APIKey == nil {
			return a, false
		}
		restored.APIKey = &APIKeyAuth{Header: a.APIKey.Header, Value: stored.APIKey.Value}
	case AuthBasic:
		if a.Basic == nil || stored.Basic == nil {
			return a, false
		}
		restored.Basic = &BasicAuth{Username: a.Basic.Username, Password: stored.Basic.Password}
	default:
		return a, false
	}
	return restored, true
}

// Validate checks that the credentials required by Type are present.
func (a Auth) Validate() error {
	switch a.Type {
	case AuthNone:
		return nil
	case AuthBearer:
		if a.Bearer == nil {
			return validation.NewError("validation_auth_bearer", "bearer token is required")
		}
		return validation.ValidateStruct(a.Bearer,
			validation.Field(&a.Bearer.Token, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
		)
	case AuthAPIKey:
		if a.APIKey == nil {
			return validation.NewError("validation_auth_apikey", "api key header and value are required")
		}
		return validation.ValidateStruct(a.APIKey,
			validation.Field(&a.APIKey.Header, validation.Required, customValidation.HeaderName),
			validation.Field(&a.APIKey.Value, validation.Required, customValidation.NoWhitespace),
		)
	case AuthBasic:
		if a.Basic == nil {
			return validation.NewError("validation_auth_basic", "basic username and password are required")
		}
		return validation.ValidateStruct(a.Basic,
			validation.Field(&a.Basic.Username, validation.Required, customValidation.NotBlank),
			validation.Field(&a.Basic.Password, validation.Required),
		)
	}
	return validation.NewError("validation_auth_type", "must be one of none, bearer, apikey, basic")
}

// CustomHeader is an extra request header. Order is preserved; later entries win.
type CustomHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Config is the single webhook configuration. Timeout is in seconds. Retries is stored
// for operators but deliveries are never retried.
type Config struct {
	URL           string         `json:"url"`
	Method        string         `json:"method"`
	Auth          Auth           `json:"auth"`
	CustomHeaders []CustomHeader `json:"custom_headers"`
	Timeout       int            `json:"timeout"`
	Retries       int            `json:"retries"`
	BodyTemplate  string         `json:"body_template"`
	VerifySSL     bool           `json:"verify_ssl"`
}

// DefaultConfig returns the configuration used until one is saved. Its URL is empty.
func DefaultConfig() *Config {
	return &Config{
		Method:        DefaultMethod,
		Auth:          Auth{Type: AuthNone},
		CustomHeaders: []CustomHeader{},
		Timeout:       DefaultTimeout,
		Retries:       DefaultRetries,
		BodyTemplate:  DefaultBodyTemplate,
		VerifySSL:     true,
	}
}

// Validate checks the configuration before it is saved.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required, customValidation.HTTPURL),
		validation.Field(&c.Method,
			validation.Required,
			validation.In(MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete),
		),
		validation.Field(&c.Auth),
		validation.Field(&c.CustomHeaders, validation.Each(validation.By(validateCustomHeader))),
		validation.Field(&c.Timeout, validation.Min(0)),
		validation.Field(&c.Retries, validation.Min(0)),
	)
	if err != nil {
		return wrapValidation(err)
	}
	return nil
}

func validateCustomHeader(value any) error {
	header, ok := value.(CustomHeader)
	if !ok {
		return validation.NewError("validation_header_type", "must be a custom header")
	}
	return validation.ValidateStruct(&header,
		validation.Field(&header.Key, validation.Required, customValidation.HeaderName),
	)
}
