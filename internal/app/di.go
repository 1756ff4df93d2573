// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	apiTokenHTTP "github.com/allisson/vmadmin/internal/apitoken/http"
	apiTokenService "github.com/allisson/vmadmin/internal/apitoken/service"
	apiTokenUseCase "github.com/allisson/vmadmin/internal/apitoken/usecase"
	catalogHTTP "github.com/allisson/vmadmin/internal/catalog/http"
	catalogUseCase "github.com/allisson/vmadmin/internal/catalog/usecase"
	"github.com/allisson/vmadmin/internal/config"
	"github.com/allisson/vmadmin/internal/database"
	"github.com/allisson/vmadmin/internal/http"
	"github.com/allisson/vmadmin/internal/metrics"
	userUseCase "github.com/allisson/vmadmin/internal/user/usecase"
	webhookHTTP "github.com/allisson/vmadmin/internal/webhook/http"
	webhookService "github.com/allisson/vmadmin/internal/webhook/service"
	webhookUseCase "github.com/allisson/vmadmin/internal/webhook/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Lifetime of background goroutines owned by components (rate limiter cleanup).
	ctx    context.Context
	cancel context.CancelFunc

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	settingsDB      *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	deliveryMetrics metrics.DeliveryMetrics

	// Services
	credentialGenerator apiTokenService.CredentialGenerator
	webhookSealer       webhookService.Sealer
	webhookSender       *webhookService.HTTPSender

	// Repositories
	userRepository          userUseCase.UserRepository
	apiTokenRepository      apiTokenUseCase.TokenRepository
	productRepository       catalogUseCase.ProductRepository
	webhookConfigRepository webhookUseCase.ConfigRepository

	// Use Cases
	userUseCase          userUseCase.UseCase
	apiTokenUseCase      apiTokenUseCase.TokenUseCase
	productUseCase       catalogUseCase.ProductUseCase
	webhookConfigUseCase webhookUseCase.ConfigUseCase
	webhookDispatcher    webhookUseCase.Dispatcher

	// HTTP Handlers
	tokenHandler         *apiTokenHTTP.TokenHandler
	productHandler       *catalogHTTP.ProductHandler
	webhookConfigHandler *webhookHTTP.ConfigHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                          sync.Mutex
	loggerInit                  sync.Once
	dbInit                      sync.Once
	settingsDBInit              sync.Once
	txManagerInit               sync.Once
	metricsProviderInit         sync.Once
	businessMetricsInit         sync.Once
	deliveryMetricsInit         sync.Once
	credentialGeneratorInit     sync.Once
	webhookSealerInit           sync.Once
	webhookSenderInit           sync.Once
	userRepositoryInit          sync.Once
	apiTokenRepositoryInit      sync.Once
	productRepositoryInit       sync.Once
	webhookConfigRepositoryInit sync.Once
	userUseCaseInit             sync.Once
	apiTokenUseCaseInit         sync.Once
	productUseCaseInit          sync.Once
	webhookConfigUseCaseInit    sync.Once
	webhookDispatcherInit       sync.Once
	tokenHandlerInit            sync.Once
	productHandlerInit          sync.Once
	webhookConfigHandlerInit    sync.Once
	httpServerInit              sync.Once
	metricsServerInit           sync.Once
	initErrors                  map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		ctx:        ctx,
		cancel:     cancel,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the catalog and identity database connection.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// SettingsDB returns the local SQLite database holding the webhook configuration.
func (c *Container) SettingsDB() (*sql.DB, error) {
	var err error
	c.settingsDBInit.Do(func() {
		c.settingsDB, err = c.initSettingsDB()
		if err != nil {
			c.initErrors["settingsDB"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingsDB"]; exists {
		return nil, storedErr
	}
	return c.settingsDB, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// DeliveryMetrics returns the webhook delivery metrics recorder.
func (c *Container) DeliveryMetrics() (metrics.DeliveryMetrics, error) {
	var err error
	c.deliveryMetricsInit.Do(func() {
		c.deliveryMetrics, err = c.initDeliveryMetrics()
		if err != nil {
			c.initErrors["deliveryMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["deliveryMetrics"]; exists {
		return nil, storedErr
	}
	return c.deliveryMetrics, nil
}

// HTTPServer returns the HTTP server instance with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancel()

	var shutdownErrors []error

	if c.webhookSender != nil {
		c.webhookSender.CloseIdleConnections()
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.settingsDB != nil {
		if err := c.settingsDB.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("settings database close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(c.ctx, database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initSettingsDB opens the local settings file.
func (c *Container) initSettingsDB() (*sql.DB, error) {
	db, err := database.OpenSQLite(c.ctx, c.config.WebhookSettingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initMetricsProvider creates the Prometheus-backed provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates business metrics, or a no-op recorder when metrics are disabled.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), provider.Namespace())
}

// initDeliveryMetrics creates delivery metrics, or a no-op recorder when metrics are disabled.
func (c *Container) initDeliveryMetrics() (metrics.DeliveryMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpDeliveryMetrics(), nil
	}
	return metrics.NewDeliveryMetrics(provider.MeterProvider(), provider.Namespace())
}

// initHTTPServer creates the HTTP server and wires every route.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	tokenHandler, err := c.TokenHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get token handler for http server: %w", err)
	}

	productHandler, err := c.ProductHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get product handler for http server: %w", err)
	}

	webhookConfigHandler, err := c.WebhookConfigHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook config handler for http server: %w", err)
	}

	tokenUseCase, err := c.APITokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get api token use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(
		c.ctx,
		c.config,
		tokenHandler,
		productHandler,
		webhookConfigHandler,
		tokenUseCase,
		metricsProvider,
	)
	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
