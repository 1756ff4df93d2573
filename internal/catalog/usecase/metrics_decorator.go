package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/catalog/domain"
	"github.com/allisson/vmadmin/internal/metrics"
)

// productUseCaseWithMetrics decorates ProductUseCase with metrics instrumentation.
type productUseCaseWithMetrics struct {
	next    ProductUseCase
	metrics metrics.BusinessMetrics
}

// NewProductUseCaseWithMetrics wraps a ProductUseCase with metrics recording.
func NewProductUseCaseWithMetrics(useCase ProductUseCase, m metrics.BusinessMetrics) ProductUseCase {
	return &productUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *productUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	p.metrics.RecordOperation(ctx, metrics.DomainCatalog, operation, status)
	p.metrics.RecordDuration(ctx, metrics.DomainCatalog, operation, time.Since(start), status)
}

func (p *productUseCaseWithMetrics) List(ctx context.Context) ([]*domain.Product, error) {
	start := time.Now()
	products, err := p.next.List(ctx)
	p.record(ctx, "product_list", start, err)
	return products, err
}

func (p *productUseCaseWithMetrics) Get(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.Get(ctx, productID)
	p.record(ctx, "product_get", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.Create(ctx, input)
	p.record(ctx, "product_create", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) Update(
	ctx context.Context,
	productID uuid.UUID,
	input domain.ProductInput,
) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.Update(ctx, productID, input)
	p.record(ctx, "product_update", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) Delete(ctx context.Context, productID uuid.UUID) error {
	start := time.Now()
	err := p.next.Delete(ctx, productID)
	p.record(ctx, "product_delete", start, err)
	return err
}

func (p *productUseCaseWithMetrics) ToggleStatus(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.ToggleStatus(ctx, productID)
	p.record(ctx, "product_toggle_status", start, err)
	return product, err
}
