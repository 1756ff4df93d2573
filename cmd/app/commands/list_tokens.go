package commands

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	apiTokenDomain "github.com/allisson/vmadmin/internal/apitoken/domain"
	apiTokenUseCase "github.com/allisson/vmadmin/internal/apitoken/usecase"
)

type tokenListItem struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	Prefix      string                      `json:"prefix"`
	Permissions []apiTokenDomain.Permission `json:"permissions"`
	IsActive    bool                        `json:"is_active"`
	ExpiresAt   *time.Time                  `json:"expires_at,omitempty"`
	LastUsedAt  *time.Time                  `json:"last_used_at,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
}

// RunListTokens prints the owner's tokens newest first. Digests are never shown.
func RunListTokens(
	ctx context.Context,
	tokenUseCase apiTokenUseCase.TokenUseCase,
	logger *slog.Logger,
	ownerID string,
	format string,
	io IOTuple,
) error {
	owner, err := parseID("owner", ownerID)
	if err != nil {
		return err
	}

	tokens, err := tokenUseCase.List(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to list api tokens: %w", err)
	}

	logger.Debug("api tokens listed", slog.Int("count", len(tokens)))

	if format == "json" {
		items := make([]tokenListItem, 0, len(tokens))
		for _, token := range tokens {
			items = append(items, tokenListItem{
				ID:          token.ID.String(),
				Name:        token.Name,
				Prefix:      token.TokenPrefix,
				Permissions: token.Permissions,
				IsActive:    token.IsActive,
				ExpiresAt:   token.ExpiresAt,
				LastUsedAt:  token.LastUsedAt,
				CreatedAt:   token.CreatedAt,
			})
		}
		return writeJSON(io.Writer, items)
	}

	if len(tokens) == 0 {
		_, _ = fmt.Fprintln(io.Writer, "No API tokens found.")
		return nil
	}

	tw := tabwriter.NewWriter(io.Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tPREFIX\tACTIVE\tEXPIRES")
	for _, token := range tokens {
		expires := "never"
		if token.ExpiresAt != nil {
			expires = token.ExpiresAt.UTC().Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n",
			token.ID, token.Name, token.TokenPrefix, token.IsActive, expires)
	}
	return tw.Flush()
}
