// Package service provides the building blocks of a webhook delivery: payload formatting,
// body rendering, request headers, the HTTP sender and credential sealing.
package service

import (
	"context"

	"github.com/allisson/vmadmin/internal/webhook/domain"
)

// BodyRenderer produces the request body for an envelope.
type BodyRenderer interface {
	Render(template string, envelope domain.Envelope) string
}

// Sender performs one HTTP request to the configured endpoint.
type Sender interface {
	Send(ctx context.Context, cfg *domain.Config, body string) (int, error)
}

// Sealer encrypts and decrypts credential values at rest.
type Sealer interface {
	Seal(plaintext []byte, aad []byte) (string, error)
	Open(sealed string, aad []byte) ([]byte, error)
}
