package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/vmadmin/internal/catalog/domain"
	"github.com/allisson/vmadmin/internal/database"
	appValidation "github.com/allisson/vmadmin/internal/validation"
)

type productUseCase struct {
	txManager   database.TxManager
	productRepo ProductRepository
	publisher   EventPublisher
	now         func() time.Time
}

func validateProductInput(input *domain.ProductInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&input.Price, validation.Min(0.0)),
		validation.Field(&input.Stock, validation.Min(0)),
		validation.Field(&input.Status, validation.In(domain.StatusActive, domain.StatusInactive)),
		validation.Field(&input.ImageURL, validation.NilOrNotEmpty, appValidation.HTTPURL),
	)
	return appValidation.WrapValidationError(err)
}

func applyInput(product *domain.Product, input domain.ProductInput) {
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.Status = input.Status
	if product.Status == "" {
		product.Status = domain.StatusActive
	}
	product.ImageURL = input.ImageURL
}

func (p *productUseCase) List(ctx context.Context) ([]*domain.Product, error) {
	return p.productRepo.List(ctx)
}

func (p *productUseCase) Get(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	return p.productRepo.Get(ctx, productID)
}

func (p *productUseCase) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	now := p.now().UTC()
	product := &domain.Product{
		ID:        uuid.Must(uuid.NewV7()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(product, input)

	if err := p.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	p.publisher.PublishProductEvent(ctx, product, domain.ActionCreate)
	return product, nil
}

func (p *productUseCase) Update(
	ctx context.Context,
	productID uuid.UUID,
	input domain.ProductInput,
) (*domain.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	var product *domain.Product
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		product, err = p.productRepo.Get(ctx, productID)
		if err != nil {
			return err
		}
		applyInput(product, input)
		product.UpdatedAt = p.now().UTC()
		return p.productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	p.publisher.PublishProductEvent(ctx, product, domain.ActionUpdate)
	return product, nil
}

// Delete removes the product and announces the snapshot taken before removal.
func (p *productUseCase) Delete(ctx context.Context, productID uuid.UUID) error {
	var product *domain.Product
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		product, err = p.productRepo.Get(ctx, productID)
		if err != nil {
			return err
		}
		return p.productRepo.Delete(ctx, productID)
	})
	if err != nil {
		return err
	}

	p.publisher.PublishProductEvent(ctx, product, domain.ActionDelete)
	return nil
}

func (p *productUseCase) ToggleStatus(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	var product *domain.Product
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		product, err = p.productRepo.Get(ctx, productID)
		if err != nil {
			return err
		}
		product.Status = product.Status.Toggled()
		product.UpdatedAt = p.now().UTC()
		return p.productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	p.publisher.PublishProductEvent(ctx, product, domain.ActionStatusToggle)
	return product, nil
}

// NewProductUseCase creates a new ProductUseCase with the provided dependencies.
// Read-modify-write mutations run inside a single transaction; events are published
// only after it commits.
func NewProductUseCase(
	txManager database.TxManager,
	productRepo ProductRepository,
	publisher EventPublisher,
) ProductUseCase {
	return &productUseCase{
		txManager:   txManager,
		productRepo: productRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}
