package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apiTokenDomain "github.com/allisson/vmadmin/internal/apitoken/domain"
	apiTokenHTTP "github.com/allisson/vmadmin/internal/apitoken/http"
	apiTokenMocks "github.com/allisson/vmadmin/internal/apitoken/usecase/mocks"
	catalogDomain "github.com/allisson/vmadmin/internal/catalog/domain"
	catalogHTTP "github.com/allisson/vmadmin/internal/catalog/http"
	catalogMocks "github.com/allisson/vmadmin/internal/catalog/usecase/mocks"
	"github.com/allisson/vmadmin/internal/config"
	"github.com/allisson/vmadmin/internal/metrics"
	webhookHTTP "github.com/allisson/vmadmin/internal/webhook/http"
	webhookMocks "github.com/allisson/vmadmin/internal/webhook/usecase/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestServer creates a test server with a discarding logger.
func createTestServer() *Server {
	return NewServer(nil, "localhost", 8080, discardLogger())
}

type routerMocks struct {
	tokens     *apiTokenMocks.MockTokenUseCase
	products   *catalogMocks.MockProductUseCase
	config     *webhookMocks.MockConfigUseCase
	dispatcher *webhookMocks.MockDispatcher
}

// createFullRouter wires SetupRouter with mocked use cases.
func createFullRouter(t *testing.T) (http.Handler, *routerMocks) {
	t.Helper()
	logger := discardLogger()
	m := &routerMocks{
		tokens:     &apiTokenMocks.MockTokenUseCase{},
		products:   &catalogMocks.MockProductUseCase{},
		config:     &webhookMocks.MockConfigUseCase{},
		dispatcher: &webhookMocks.MockDispatcher{},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := createTestServer()
	server.SetupRouter(
		ctx,
		&config.Config{RateLimitEnabled: false},
		apiTokenHTTP.NewTokenHandler(m.tokens, logger),
		catalogHTTP.NewProductHandler(m.products, logger),
		webhookHTTP.NewConfigHandler(m.config, m.dispatcher, logger),
		m.tokens,
		nil,
	)
	return server.GetHandler(), m
}

func principalWith(permissions ...apiTokenDomain.Permission) *apiTokenDomain.Principal {
	return &apiTokenDomain.Principal{
		TokenID:     uuid.Must(uuid.NewV7()),
		OwnerID:     uuid.Must(uuid.NewV7()),
		Permissions: permissions,
	}
}

// TestHealthHandler tests the health check endpoint handler.
func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	t.Run("NilDB", func(t *testing.T) {
		server := createTestServer()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not_ready", response["status"])

		components, ok := response["components"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "error", components["database"])
	})

	t.Run("DatabaseReachable", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() {
			_ = db.Close()
		}()
		mock.ExpectPing()

		server := NewServer(db, "localhost", 8080, discardLogger())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "ready", response["status"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseUnreachable", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() {
			_ = db.Close()
		}()
		mock.ExpectPing().WillReturnError(assert.AnError)

		server := NewServer(db, "localhost", 8080, discardLogger())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

// TestCustomLoggerMiddleware tests the custom logging middleware.
func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "test", response["message"])
	_, err := uuid.Parse(w.Header().Get("X-Request-Id"))
	assert.NoError(t, err)
}

// TestRecoveryMiddleware tests Gin's built-in recovery middleware.
func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_PublicEndpoints(t *testing.T) {
	t.Run("Health", func(t *testing.T) {
		handler, _ := createFullRouter(t)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GetProductsWithoutToken", func(t *testing.T) {
		handler, m := createFullRouter(t)
		m.products.On("List", mock.Anything).Return([]*catalogDomain.Product{}, nil).Once()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/get-products", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success": true, "data": [], "count": 0}`, w.Body.String())
		m.tokens.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownPathWithoutTokenIsUnauthorized", func(t *testing.T) {
		handler, m := createFullRouter(t)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		m.tokens.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownPathWithValidTokenIsNotFound", func(t *testing.T) {
		handler, m := createFullRouter(t)
		m.tokens.On("Verify", mock.Anything, "tok", apiTokenDomain.Permission("")).
			Return(principalWith(apiTokenDomain.PermissionWebhookReceive), nil).
			Once()

		req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		m.tokens.AssertExpectations(t)
	})

	t.Run("UnknownPathWithRevokedTokenIsUnauthorized", func(t *testing.T) {
		handler, m := createFullRouter(t)
		m.tokens.On("Verify", mock.Anything, "tok", apiTokenDomain.Permission("")).
			Return(nil, apiTokenDomain.ErrTokenInactive).
			Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/nonexistent", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("NoMetricsEndpoint", func(t *testing.T) {
		handler, m := createFullRouter(t)
		m.tokens.On("Verify", mock.Anything, "tok", apiTokenDomain.Permission("")).
			Return(principalWith(apiTokenDomain.DefaultPermissions()...), nil).
			Once()

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_ProtectedEndpoints(t *testing.T) {
	t.Run("MissingTokenIsUnauthorized", func(t *testing.T) {
		handler, m := createFullRouter(t)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/access", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		m.tokens.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AccessRequiresWebhookReceive", func(t *testing.T) {
		handler, m := createFullRouter(t)
		m.tokens.On("Verify", mock.Anything, "tok", apiTokenDomain.PermissionWebhookReceive).
			Return(principalWith(apiTokenDomain.PermissionWebhookReceive), nil).
			Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/access", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		m.tokens.AssertExpectations(t)
	})

	t.Run("MutationsRequireAPIAccess", func(t *testing.T) {
		handler, m := createFullRouter(t)
		m.tokens.On("Verify", mock.Anything, "tok", apiTokenDomain.PermissionAPIAccess).
			Return(nil, apiTokenDomain.ErrInsufficientPermission).
			Once()

		req := httptest.NewRequest(http.MethodDelete, "/v1/products/"+uuid.Must(uuid.NewV7()).String(), nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		m.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("WebhookTestRoute", func(t *testing.T) {
		handler, m := createFullRouter(t)
		m.tokens.On("Verify", mock.Anything, "tok", apiTokenDomain.PermissionAPIAccess).
			Return(principalWith(apiTokenDomain.DefaultPermissions()...), nil).
			Once()
		m.dispatcher.On("SendTest", mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/webhook-config/test", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		m.dispatcher.AssertExpectations(t)
	})
}

// TestServer_ShutdownGracefully tests graceful server shutdown.
func TestServer_ShutdownGracefully(t *testing.T) {
	server := NewServer(nil, "localhost", 0, discardLogger())
	server.router = gin.New()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	require.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

// TestMetricsServer_Endpoints tests the metrics server endpoints.
func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsServer_WithoutProvider(t *testing.T) {
	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), nil)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
