package service

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/webhook/domain"
)

// HTTPSender delivers webhook requests with net/http.
type HTTPSender struct {
	verifying *http.Transport
	insecure  *http.Transport
}

// NewHTTPSender creates an HTTPSender with one transport per TLS verification mode so
// connections are reused across deliveries.
func NewHTTPSender() *HTTPSender {
	verifying := http.DefaultTransport.(*http.Transport).Clone()

	insecure := http.DefaultTransport.(*http.Transport).Clone()
	insecure.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // operator opted out with verify_ssl=false
	}

	return &HTTPSender{verifying: verifying, insecure: insecure}
}

// Send performs the request and returns the response status code. GET and DELETE
// requests carry no body. A zero timeout means no client timeout. Transport failures
// are wrapped in ErrDelivery; any HTTP status counts as a completed delivery.
func (s *HTTPSender) Send(ctx context.Context, cfg *domain.Config, body string) (int, error) {
	var reader io.Reader
	if cfg.Method != domain.MethodGet && cfg.Method != domain.MethodDelete {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, cfg.Method, cfg.URL, reader)
	if err != nil {
		return 0, errors.Wrapf(domain.ErrDelivery, "build request: %v", err)
	}
	req.Header = BuildHeaders(cfg)

	transport := s.verifying
	if !cfg.VerifySSL {
		transport = s.insecure
	}
	client := &http.Client{
		Transport: transport,
		Timeout:   time.Duration(cfg.Timeout) * time.Second,
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, errors.Wrapf(domain.ErrDelivery, "%v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.StatusCode, nil
}

// CloseIdleConnections releases pooled connections.
func (s *HTTPSender) CloseIdleConnections() {
	s.verifying.CloseIdleConnections()
	s.insecure.CloseIdleConnections()
}
