package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	webhookDTO "github.com/allisson/vmadmin/internal/webhook/http/dto"
	webhookUseCase "github.com/allisson/vmadmin/internal/webhook/usecase"
)

// RunSetWebhookConfig replaces the webhook configuration with the JSON document in
// configJSON, using the same shape as PUT /v1/webhook-config. A value of "-" reads the
// document from io.Reader.
func RunSetWebhookConfig(
	ctx context.Context,
	configUseCase webhookUseCase.ConfigUseCase,
	logger *slog.Logger,
	configJSON string,
	io IOTuple,
) error {
	var req webhookDTO.WebhookConfigRequest

	decoder := json.NewDecoder(strings.NewReader(configJSON))
	if configJSON == "-" {
		decoder = json.NewDecoder(io.Reader)
	}
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return fmt.Errorf("failed to parse webhook config: %w", err)
	}

	cfg := req.ToDomain()
	if err := configUseCase.Save(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save webhook config: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "Webhook configured: %s %s\n", cfg.Method, cfg.URL)
	logger.Info("webhook config saved",
		slog.String("method", cfg.Method),
		slog.String("auth_type", string(cfg.Auth.Type)),
	)
	return nil
}
