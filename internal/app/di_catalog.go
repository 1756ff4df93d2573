package app

import (
	"fmt"

	catalogHTTP "github.com/allisson/vmadmin/internal/catalog/http"
	catalogRepository "github.com/allisson/vmadmin/internal/catalog/repository"
	catalogUseCase "github.com/allisson/vmadmin/internal/catalog/usecase"
)

// ProductRepository returns the product repository based on database driver.
func (c *Container) ProductRepository() (catalogUseCase.ProductRepository, error) {
	var err error
	c.productRepositoryInit.Do(func() {
		c.productRepository, err = c.initProductRepository()
		if err != nil {
			c.initErrors["productRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productRepository"]; exists {
		return nil, storedErr
	}
	return c.productRepository, nil
}

// ProductUseCase returns the product use case.
func (c *Container) ProductUseCase() (catalogUseCase.ProductUseCase, error) {
	var err error
	c.productUseCaseInit.Do(func() {
		c.productUseCase, err = c.initProductUseCase()
		if err != nil {
			c.initErrors["productUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productUseCase"]; exists {
		return nil, storedErr
	}
	return c.productUseCase, nil
}

// ProductHandler returns the product HTTP handler.
func (c *Container) ProductHandler() (*catalogHTTP.ProductHandler, error) {
	var err error
	c.productHandlerInit.Do(func() {
		c.productHandler, err = c.initProductHandler()
		if err != nil {
			c.initErrors["productHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productHandler"]; exists {
		return nil, storedErr
	}
	return c.productHandler, nil
}

// initProductRepository creates the product repository based on the database driver.
func (c *Container) initProductRepository() (catalogUseCase.ProductRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for product repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return catalogRepository.NewPostgreSQLProductRepository(db), nil
	case "mysql":
		return catalogRepository.NewMySQLProductRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initProductUseCase creates the product use case. Mutations are announced through the
// webhook dispatcher.
func (c *Container) initProductUseCase() (catalogUseCase.ProductUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for product use case: %w", err)
	}

	productRepo, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for product use case: %w", err)
	}

	dispatcher, err := c.WebhookDispatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook dispatcher for product use case: %w", err)
	}

	baseUseCase := catalogUseCase.NewProductUseCase(txManager, productRepo, dispatcher)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for product use case: %w", err)
		}
		return catalogUseCase.NewProductUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initProductHandler creates the product HTTP handler.
func (c *Container) initProductHandler() (*catalogHTTP.ProductHandler, error) {
	productUseCase, err := c.ProductUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get product use case for product handler: %w", err)
	}
	return catalogHTTP.NewProductHandler(productUseCase, c.Logger()), nil
}
