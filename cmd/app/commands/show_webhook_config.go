package commands

import (
	"context"
	"fmt"
	"log/slog"

	webhookDTO "github.com/allisson/vmadmin/internal/webhook/http/dto"
	webhookUseCase "github.com/allisson/vmadmin/internal/webhook/usecase"
)

// RunShowWebhookConfig prints the stored configuration as JSON with credentials redacted.
// The defaults are printed with configured=false when nothing was saved.
func RunShowWebhookConfig(
	ctx context.Context,
	configUseCase webhookUseCase.ConfigUseCase,
	logger *slog.Logger,
	io IOTuple,
) error {
	cfg, configured, err := configUseCase.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load webhook config: %w", err)
	}

	logger.Debug("webhook config loaded", slog.Bool("configured", configured))
	return writeJSON(io.Writer, webhookDTO.MapConfigToResponse(cfg, configured))
}
