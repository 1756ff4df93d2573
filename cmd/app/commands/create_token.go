package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apiTokenDomain "github.com/allisson/vmadmin/internal/apitoken/domain"
	apiTokenUseCase "github.com/allisson/vmadmin/internal/apitoken/usecase"
)

// RunCreateToken issues an API token for the owner. The raw token is printed once and
// cannot be retrieved again. A non-positive expiresInDays issues a token that never
// expires.
func RunCreateToken(
	ctx context.Context,
	tokenUseCase apiTokenUseCase.TokenUseCase,
	logger *slog.Logger,
	ownerID string,
	name string,
	permissions string,
	expiresInDays int,
	format string,
	io IOTuple,
) error {
	owner, err := parseID("owner", ownerID)
	if err != nil {
		return err
	}

	input := apiTokenUseCase.CreateTokenInput{
		Name:        name,
		Permissions: parsePermissions(permissions),
	}
	if expiresInDays > 0 {
		input.ExpiresInDays = &expiresInDays
	}

	output, err := tokenUseCase.Create(ctx, owner, input)
	if err != nil {
		return fmt.Errorf("failed to create api token: %w", err)
	}

	if format == "json" {
		result := map[string]any{
			"id":          output.Token.ID.String(),
			"name":        output.Token.Name,
			"prefix":      output.Token.TokenPrefix,
			"permissions": output.Token.Permissions,
			"token":       output.RawToken,
		}
		if output.Token.ExpiresAt != nil {
			result["expires_at"] = output.Token.ExpiresAt
		}
		if err := writeJSON(io.Writer, result); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(io.Writer, "API token created successfully!")
		_, _ = fmt.Fprintf(io.Writer, "Token ID: %s\n", output.Token.ID)
		_, _ = fmt.Fprintf(io.Writer, "Token: %s\n", output.RawToken)
		_, _ = fmt.Fprintln(io.Writer, "\nIMPORTANT: The token is shown only once. Store it securely.")
	}

	logger.Info("api token created",
		slog.String("token_id", output.Token.ID.String()),
		slog.String("owner_id", owner.String()),
	)
	return nil
}

// parsePermissions splits a comma-separated list. An empty list selects the defaults.
func parsePermissions(input string) []apiTokenDomain.Permission {
	var permissions []apiTokenDomain.Permission
	for part := range strings.SplitSeq(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			permissions = append(permissions, apiTokenDomain.Permission(trimmed))
		}
	}
	return permissions
}
