package app

import (
	"fmt"

	webhookHTTP "github.com/allisson/vmadmin/internal/webhook/http"
	webhookRepository "github.com/allisson/vmadmin/internal/webhook/repository"
	webhookService "github.com/allisson/vmadmin/internal/webhook/service"
	webhookUseCase "github.com/allisson/vmadmin/internal/webhook/usecase"
)

// WebhookSealer returns the credential sealer, or nil when no settings key is configured.
func (c *Container) WebhookSealer() (webhookService.Sealer, error) {
	var err error
	c.webhookSealerInit.Do(func() {
		c.webhookSealer, err = c.initWebhookSealer()
		if err != nil {
			c.initErrors["webhookSealer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["webhookSealer"]; exists {
		return nil, storedErr
	}
	return c.webhookSealer, nil
}

// WebhookSender returns the HTTP sender used for deliveries.
func (c *Container) WebhookSender() *webhookService.HTTPSender {
	c.webhookSenderInit.Do(func() {
		c.webhookSender = webhookService.NewHTTPSender()
	})
	return c.webhookSender
}

// WebhookConfigRepository returns the SQLite-backed configuration store.
func (c *Container) WebhookConfigRepository() (webhookUseCase.ConfigRepository, error) {
	var err error
	c.webhookConfigRepositoryInit.Do(func() {
		c.webhookConfigRepository, err = c.initWebhookConfigRepository()
		if err != nil {
			c.initErrors["webhookConfigRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["webhookConfigRepository"]; exists {
		return nil, storedErr
	}
	return c.webhookConfigRepository, nil
}

// WebhookConfigUseCase returns the webhook configuration use case.
func (c *Container) WebhookConfigUseCase() (webhookUseCase.ConfigUseCase, error) {
	var err error
	c.webhookConfigUseCaseInit.Do(func() {
		c.webhookConfigUseCase, err = c.initWebhookConfigUseCase()
		if err != nil {
			c.initErrors["webhookConfigUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["webhookConfigUseCase"]; exists {
		return nil, storedErr
	}
	return c.webhookConfigUseCase, nil
}

// WebhookDispatcher returns the webhook dispatcher. Its workers start with Run.
func (c *Container) WebhookDispatcher() (webhookUseCase.Dispatcher, error) {
	var err error
	c.webhookDispatcherInit.Do(func() {
		c.webhookDispatcher, err = c.initWebhookDispatcher()
		if err != nil {
			c.initErrors["webhookDispatcher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["webhookDispatcher"]; exists {
		return nil, storedErr
	}
	return c.webhookDispatcher, nil
}

// WebhookConfigHandler returns the webhook configuration HTTP handler.
func (c *Container) WebhookConfigHandler() (*webhookHTTP.ConfigHandler, error) {
	var err error
	c.webhookConfigHandlerInit.Do(func() {
		c.webhookConfigHandler, err = c.initWebhookConfigHandler()
		if err != nil {
			c.initErrors["webhookConfigHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["webhookConfigHandler"]; exists {
		return nil, storedErr
	}
	return c.webhookConfigHandler, nil
}

// initWebhookSealer builds the sealer from the configured base64 key.
func (c *Container) initWebhookSealer() (webhookService.Sealer, error) {
	if c.config.WebhookSettingsEncryptionKey == "" {
		return nil, nil
	}
	sealer, err := webhookService.NewSealerFromBase64(c.config.WebhookSettingsEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook sealer: %w", err)
	}
	return sealer, nil
}

// initWebhookConfigRepository opens the settings store and creates its table.
func (c *Container) initWebhookConfigRepository() (webhookUseCase.ConfigRepository, error) {
	settingsDB, err := c.SettingsDB()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings database for webhook config repository: %w", err)
	}

	sealer, err := c.WebhookSealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get sealer for webhook config repository: %w", err)
	}

	repo := webhookRepository.NewSQLiteConfigRepository(settingsDB, sealer)
	if err := repo.Bootstrap(c.ctx); err != nil {
		return nil, fmt.Errorf("failed to bootstrap webhook config repository: %w", err)
	}
	return repo, nil
}

// initWebhookConfigUseCase creates the webhook configuration use case.
func (c *Container) initWebhookConfigUseCase() (webhookUseCase.ConfigUseCase, error) {
	configRepo, err := c.WebhookConfigRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook config repository for webhook config use case: %w", err)
	}
	return webhookUseCase.NewConfigUseCase(configRepo), nil
}

// initWebhookDispatcher creates the dispatcher with the active product lister.
func (c *Container) initWebhookDispatcher() (webhookUseCase.Dispatcher, error) {
	configUseCase, err := c.WebhookConfigUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook config use case for webhook dispatcher: %w", err)
	}

	productRepo, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for webhook dispatcher: %w", err)
	}

	deliveryMetrics, err := c.DeliveryMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery metrics for webhook dispatcher: %w", err)
	}

	return webhookUseCase.NewDispatcher(
		configUseCase,
		productRepo,
		c.WebhookSender(),
		webhookService.NewPlaceholderRenderer(),
		deliveryMetrics,
		webhookUseCase.DispatcherConfig{
			Workers:   c.config.WebhookWorkers,
			QueueSize: c.config.WebhookQueueSize,
		},
		c.Logger(),
	), nil
}

// initWebhookConfigHandler creates the webhook configuration HTTP handler.
func (c *Container) initWebhookConfigHandler() (*webhookHTTP.ConfigHandler, error) {
	configUseCase, err := c.WebhookConfigUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook config use case for webhook config handler: %w", err)
	}

	dispatcher, err := c.WebhookDispatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook dispatcher for webhook config handler: %w", err)
	}

	return webhookHTTP.NewConfigHandler(configUseCase, dispatcher, c.Logger()), nil
}
