// Package usecase implements catalog management. Every mutation announces itself to the
// configured event publisher.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/catalog/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, productID uuid.UUID) error

	// Get retrieves a product by ID. Returns ErrProductNotFound if not found.
	Get(ctx context.Context, productID uuid.UUID) (*domain.Product, error)

	// List returns every product newest first.
	List(ctx context.Context) ([]*domain.Product, error)

	// ListActive returns active products newest first.
	ListActive(ctx context.Context) ([]*domain.Product, error)
}

// EventPublisher receives a notification for each successful catalog mutation.
// Implementations must not block on delivery.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, product *domain.Product, action domain.Action)
}

// ProductUseCase defines catalog operations.
type ProductUseCase interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, productID uuid.UUID, input domain.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error

	// ToggleStatus flips the product between active and inactive.
	ToggleStatus(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
}
