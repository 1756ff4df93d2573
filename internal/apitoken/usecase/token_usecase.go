package usecase

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/apitoken/domain"
	"github.com/allisson/vmadmin/internal/apitoken/service"
	apperrors "github.com/allisson/vmadmin/internal/errors"
	appValidation "github.com/allisson/vmadmin/internal/validation"
)

type tokenUseCase struct {
	tokenRepo    TokenRepository
	identity     IdentityService
	generator    service.CredentialGenerator
	touchTimeout time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

func validateCreateTokenInput(input *CreateTokenInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.ExpiresInDays,
			validation.Max(domain.MaxExpiresInDays).Error("expires_in_days must be at most 36500"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create issues a new token. The raw token is the marker followed by the first
// TokenLength-len(TokenMarker) characters of a generated secret; only its digest and
// display prefix are stored.
func (t *tokenUseCase) Create(
	ctx context.Context,
	owner uuid.UUID,
	input CreateTokenInput,
) (*CreateTokenOutput, error) {
	if owner == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}
	if err := validateCreateTokenInput(&input); err != nil {
		return nil, err
	}

	requested := input.Permissions
	if len(requested) == 0 {
		requested = domain.DefaultPermissions()
	}
	permissions := make([]domain.Permission, 0, len(requested))
	for _, p := range requested {
		if !p.IsValid() {
			return nil, apperrors.Wrapf(domain.ErrInvalidPermission, "permission %q", p)
		}
		if !slices.Contains(permissions, p) {
			permissions = append(permissions, p)
		}
	}

	secret, err := t.generator.GenerateSecret()
	if err != nil {
		return nil, err
	}
	rawToken := domain.TokenMarker + secret[:domain.TokenLength-len(domain.TokenMarker)]

	now := t.now().UTC()
	token := &domain.APIToken{
		ID:          uuid.Must(uuid.NewV7()),
		OwnerID:     owner,
		Name:        strings.TrimSpace(input.Name),
		TokenHash:   t.generator.Digest(rawToken),
		TokenPrefix: domain.DisplayPrefix(rawToken),
		Permissions: permissions,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.ExpiresInDays != nil {
		expiresAt := now.AddDate(0, 0, *input.ExpiresInDays)
		token.ExpiresAt = &expiresAt
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &CreateTokenOutput{Token: token, RawToken: rawToken}, nil
}

func (t *tokenUseCase) List(ctx context.Context, owner uuid.UUID) ([]*domain.APIToken, error) {
	if owner == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}
	return t.tokenRepo.ListByOwner(ctx, owner)
}

// owned loads a token and hides tokens of other owners behind ErrTokenNotFound.
func (t *tokenUseCase) owned(ctx context.Context, owner, tokenID uuid.UUID) (*domain.APIToken, error) {
	if owner == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}
	token, err := t.tokenRepo.Get(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if token.OwnerID != owner {
		return nil, domain.ErrTokenNotFound
	}
	return token, nil
}

func (t *tokenUseCase) Revoke(ctx context.Context, owner uuid.UUID, tokenID uuid.UUID) error {
	if _, err := t.owned(ctx, owner, tokenID); err != nil {
		return err
	}
	return t.tokenRepo.Deactivate(ctx, tokenID)
}

func (t *tokenUseCase) Delete(ctx context.Context, owner uuid.UUID, tokenID uuid.UUID) error {
	if _, err := t.owned(ctx, owner, tokenID); err != nil {
		return err
	}
	return t.tokenRepo.Delete(ctx, tokenID)
}

// Verify checks, in order: shape, existence, active flag, expiry, permission and owner
// approval. The shape check never reaches the store. On success last_used_at is updated
// in the background; a failed update is logged and does not affect the result.
func (t *tokenUseCase) Verify(
	ctx context.Context,
	presented string,
	required domain.Permission,
) (*domain.Principal, error) {
	if !domain.IsWellFormed(presented) {
		return nil, domain.ErrMalformedToken
	}

	tokenHash := t.generator.Digest(presented)
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}

	if !token.IsActive {
		return nil, domain.ErrTokenInactive
	}

	now := t.now().UTC()
	if token.IsExpired(now) {
		return nil, domain.ErrTokenExpired
	}

	if required != "" && !token.HasPermission(required) {
		return nil, domain.ErrInsufficientPermission
	}

	approved, err := t.identity.IsApproved(ctx, token.OwnerID)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, domain.ErrOwnerNotApproved
	}

	go t.touchLastUsed(tokenHash, now)

	return &domain.Principal{
		TokenID:     token.ID,
		OwnerID:     token.OwnerID,
		Permissions: token.Permissions,
	}, nil
}

// touchLastUsed runs detached from the request context so a finished request does not
// cancel the write.
func (t *tokenUseCase) touchLastUsed(tokenHash string, usedAt time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), t.touchTimeout)
	defer cancel()

	if err := t.tokenRepo.TouchLastUsed(ctx, tokenHash, usedAt); err != nil {
		t.logger.Warn("failed to record api token usage", slog.Any("error", err))
	}
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	tokenRepo TokenRepository,
	identity IdentityService,
	generator service.CredentialGenerator,
	touchTimeout time.Duration,
	logger *slog.Logger,
) TokenUseCase {
	if touchTimeout <= 0 {
		touchTimeout = 5 * time.Second
	}
	return &tokenUseCase{
		tokenRepo:    tokenRepo,
		identity:     identity,
		generator:    generator,
		touchTimeout: touchTimeout,
		logger:       logger,
		now:          time.Now,
	}
}
