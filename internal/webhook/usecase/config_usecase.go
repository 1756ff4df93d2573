package usecase

import (
	"context"
	"strings"

	apperrors "github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/webhook/domain"
)

type configUseCase struct {
	configRepo ConfigRepository
}

// Save validates and stores cfg. A credential equal to domain.RedactedSecret keeps
// the secret already stored for the same auth type, so a displayed configuration can
// be sent back unchanged.
func (c *configUseCase) Save(ctx context.Context, cfg *domain.Config) error {
	normalized := *cfg
	normalized.URL = strings.TrimSpace(cfg.URL)
	normalized.Method = strings.ToUpper(strings.TrimSpace(cfg.Method))
	if normalized.Auth.Type == "" {
		normalized.Auth.Type = domain.AuthNone
	}
	if normalized.CustomHeaders == nil {
		normalized.CustomHeaders = []domain.CustomHeader{}
	}

	if normalized.Auth.Redacted() {
		auth, err := c.restoreSecret(ctx, normalized.Auth)
		if err != nil {
			return err
		}
		normalized.Auth = auth
	}

	if err := normalized.Validate(); err != nil {
		return err
	}

	return c.configRepo.Save(ctx, &normalized)
}

func (c *configUseCase) restoreSecret(ctx context.Context, auth domain.Auth) (domain.Auth, error) {
	stored, configured, err := c.configRepo.Load(ctx)
	if err != nil {
		return auth, err
	}
	if !configured {
		return auth, apperrors.Wrap(domain.ErrValidation, "auth: redacted credential given but none is stored")
	}
	restored, ok := auth.WithSecretFrom(stored.Auth)
	if !ok {
		return auth, apperrors.Wrapf(
			domain.ErrValidation,
			"auth: redacted credential given but no %s credential is stored",
			auth.Type,
		)
	}
	return restored, nil
}

func (c *configUseCase) Load(ctx context.Context) (*domain.Config, bool, error) {
	cfg, configured, err := c.configRepo.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	if !configured {
		return domain.DefaultConfig(), false, nil
	}
	return cfg, true, nil
}

// NewConfigUseCase creates a new ConfigUseCase.
func NewConfigUseCase(configRepo ConfigRepository) ConfigUseCase {
	return &configUseCase{configRepo: configRepo}
}
