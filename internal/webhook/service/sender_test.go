package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/webhook/domain"
)

type capturedRequest struct {
	method string
	body   string
	header http.Header
}

func newCapturingServer(t *testing.T, status int) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()
	captured := make(chan capturedRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured <- capturedRequest{method: r.Method, body: string(body), header: r.Header.Clone()}
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func TestHTTPSender_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("PostCarriesBodyAndHeaders", func(t *testing.T) {
		server, captured := newCapturingServer(t, http.StatusAccepted)
		sender := NewHTTPSender()
		defer sender.CloseIdleConnections()

		cfg := domain.DefaultConfig()
		cfg.URL = server.URL
		cfg.Auth = domain.Auth{Type: domain.AuthBearer, Bearer: &domain.BearerAuth{Token: "secret"}}

		status, err := sender.Send(ctx, cfg, `{"hello":"world"}`)

		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, status)
		req := <-captured
		assert.Equal(t, http.MethodPost, req.method)
		assert.Equal(t, `{"hello":"world"}`, req.body)
		assert.Equal(t, "Bearer secret", req.header.Get("Authorization"))
		assert.Equal(t, "application/json", req.header.Get("Content-Type"))
	})

	for _, method := range []string{domain.MethodGet, domain.MethodDelete} {
		t.Run(method+"HasNoBody", func(t *testing.T) {
			server, captured := newCapturingServer(t, http.StatusOK)
			sender := NewHTTPSender()
			defer sender.CloseIdleConnections()

			cfg := domain.DefaultConfig()
			cfg.URL = server.URL
			cfg.Method = method

			_, err := sender.Send(ctx, cfg, `{"ignored":true}`)

			require.NoError(t, err)
			req := <-captured
			assert.Equal(t, method, req.method)
			assert.Empty(t, req.body)
		})
	}

	t.Run("ErrorStatusIsStillDelivered", func(t *testing.T) {
		server, _ := newCapturingServer(t, http.StatusInternalServerError)
		sender := NewHTTPSender()
		defer sender.CloseIdleConnections()

		cfg := domain.DefaultConfig()
		cfg.URL = server.URL

		status, err := sender.Send(ctx, cfg, "{}")

		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, status)
	})

	t.Run("TransportFailureIsDeliveryError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		cfg := domain.DefaultConfig()
		cfg.URL = url

		_, err := NewHTTPSender().Send(ctx, cfg, "{}")

		assert.ErrorIs(t, err, domain.ErrDelivery)
		assert.False(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("TimeoutIsDeliveryError", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-time.After(5 * time.Second):
			}
		}))
		defer server.Close()
		defer close(release)

		sender := NewHTTPSender()
		defer sender.CloseIdleConnections()

		cfg := domain.DefaultConfig()
		cfg.URL = server.URL
		cfg.Timeout = 1

		start := time.Now()
		_, err := sender.Send(ctx, cfg, "{}")

		assert.ErrorIs(t, err, domain.ErrDelivery)
		assert.Less(t, time.Since(start), 4*time.Second)
	})

	t.Run("VerifySSL", func(t *testing.T) {
		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		sender := NewHTTPSender()
		defer sender.CloseIdleConnections()

		cfg := domain.DefaultConfig()
		cfg.URL = server.URL

		_, err := sender.Send(ctx, cfg, "{}")
		assert.ErrorIs(t, err, domain.ErrDelivery)

		cfg.VerifySSL = false
		status, err := sender.Send(ctx, cfg, "{}")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, status)
	})
}
