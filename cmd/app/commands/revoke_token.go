package commands

import (
	"context"
	"fmt"
	"log/slog"

	apiTokenUseCase "github.com/allisson/vmadmin/internal/apitoken/usecase"
)

// RunRevokeToken deactivates a token. The row is kept so it still shows up in list-tokens.
func RunRevokeToken(
	ctx context.Context,
	tokenUseCase apiTokenUseCase.TokenUseCase,
	logger *slog.Logger,
	ownerID string,
	tokenID string,
	io IOTuple,
) error {
	owner, err := parseID("owner", ownerID)
	if err != nil {
		return err
	}
	id, err := parseID("token id", tokenID)
	if err != nil {
		return err
	}

	if err := tokenUseCase.Revoke(ctx, owner, id); err != nil {
		return fmt.Errorf("failed to revoke api token: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "API token %s revoked\n", id)
	logger.Info("api token revoked", slog.String("token_id", id.String()))
	return nil
}

// RunDeleteToken permanently removes a token.
func RunDeleteToken(
	ctx context.Context,
	tokenUseCase apiTokenUseCase.TokenUseCase,
	logger *slog.Logger,
	ownerID string,
	tokenID string,
	io IOTuple,
) error {
	owner, err := parseID("owner", ownerID)
	if err != nil {
		return err
	}
	id, err := parseID("token id", tokenID)
	if err != nil {
		return err
	}

	if err := tokenUseCase.Delete(ctx, owner, id); err != nil {
		return fmt.Errorf("failed to delete api token: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "API token %s deleted\n", id)
	logger.Info("api token deleted", slog.String("token_id", id.String()))
	return nil
}
