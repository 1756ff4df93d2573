// Package http provides HTTP handlers for the webhook configuration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/httputil"
	"github.com/allisson/vmadmin/internal/webhook/domain"
	"github.com/allisson/vmadmin/internal/webhook/http/dto"
	webhookUseCase "github.com/allisson/vmadmin/internal/webhook/usecase"
)

// ConfigHandler handles HTTP requests for the webhook configuration.
type ConfigHandler struct {
	configUseCase webhookUseCase.ConfigUseCase
	dispatcher    webhookUseCase.Dispatcher
	logger        *slog.Logger
}

// NewConfigHandler creates a new webhook configuration handler.
func NewConfigHandler(
	configUseCase webhookUseCase.ConfigUseCase,
	dispatcher webhookUseCase.Dispatcher,
	logger *slog.Logger,
) *ConfigHandler {
	return &ConfigHandler{
		configUseCase: configUseCase,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// GetHandler returns the stored configuration or the defaults.
// GET /v1/webhook-config - Requires api_access permission.
func (h *ConfigHandler) GetHandler(c *gin.Context) {
	cfg, configured, err := h.configUseCase.Load(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapConfigToResponse(cfg, configured))
}

// SaveHandler replaces the configuration.
// PUT /v1/webhook-config - Requires api_access permission.
func (h *ConfigHandler) SaveHandler(c *gin.Context) {
	var req dto.WebhookConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.configUseCase.Save(c.Request.Context(), req.ToDomain()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Respond with the normalized form as stored.
	h.GetHandler(c)
}

// TestHandler delivers a webhook_test event synchronously.
// POST /v1/webhook-config/test - Requires api_access permission.
// Returns 409 when nothing is configured and 502 when the endpoint could not be reached.
func (h *ConfigHandler) TestHandler(c *gin.Context) {
	err := h.dispatcher.SendTest(c.Request.Context())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.TestWebhookResponse{Success: true, Message: "Test webhook delivered"})
	case apperrors.Is(err, domain.ErrNotConfigured):
		c.JSON(http.StatusConflict, httputil.ErrorResponse{
			Error:   "not_configured",
			Message: "Save a webhook configuration before sending a test",
		})
	case apperrors.Is(err, domain.ErrDelivery):
		c.JSON(http.StatusBadGateway, httputil.ErrorResponse{
			Error:   "delivery_failed",
			Message: "The webhook endpoint could not be reached",
		})
	default:
		httputil.HandleErrorGin(c, err, h.logger)
	}
}
