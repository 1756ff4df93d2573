// Package usecase implements the webhook configuration store and the asynchronous
// dispatcher that announces catalog changes.
package usecase

import (
	"context"

	catalogDomain "github.com/allisson/vmadmin/internal/catalog/domain"
	"github.com/allisson/vmadmin/internal/webhook/domain"
)

// ConfigRepository persists the single webhook configuration.
type ConfigRepository interface {
	Save(ctx context.Context, cfg *domain.Config) error

	// Load returns (nil, false, nil) when nothing was saved.
	Load(ctx context.Context) (*domain.Config, bool, error)
}

// ActiveProductLister supplies the catalog snapshot attached to every envelope.
type ActiveProductLister interface {
	ListActive(ctx context.Context) ([]*catalogDomain.Product, error)
}

// ConfigUseCase validates and stores the webhook configuration.
type ConfigUseCase interface {
	// Save validates cfg and replaces the stored configuration. Returns ErrValidation
	// when cfg is rejected.
	Save(ctx context.Context, cfg *domain.Config) error

	// Load returns the stored configuration and true, or the defaults and false.
	Load(ctx context.Context) (*domain.Config, bool, error)
}

// Dispatcher announces events to the configured webhook endpoint.
type Dispatcher interface {
	// Notify enqueues an event and returns immediately. Events are dropped when the
	// queue is full.
	Notify(ctx context.Context, eventType string, eventData map[string]any)

	// PublishProductEvent formats a catalog mutation and enqueues it.
	PublishProductEvent(ctx context.Context, product *catalogDomain.Product, action catalogDomain.Action)

	// Deliver sends one event synchronously. Returns ErrNotConfigured when no
	// configuration is saved and ErrDelivery when the request did not complete.
	Deliver(ctx context.Context, eventType string, eventData map[string]any) error

	// SendTest delivers a webhook_test event synchronously.
	SendTest(ctx context.Context) error

	// Run drains the queue with the configured number of workers until ctx is done.
	Run(ctx context.Context) error
}
