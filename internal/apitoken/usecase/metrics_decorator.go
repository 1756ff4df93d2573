package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/apitoken/domain"
	"github.com/allisson/vmadmin/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	t.metrics.RecordOperation(ctx, metrics.DomainAPIToken, operation, status)
	t.metrics.RecordDuration(ctx, metrics.DomainAPIToken, operation, time.Since(start), status)
}

func (t *tokenUseCaseWithMetrics) Create(
	ctx context.Context,
	owner uuid.UUID,
	input CreateTokenInput,
) (*CreateTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Create(ctx, owner, input)
	t.record(ctx, "token_create", start, err)
	return output, err
}

func (t *tokenUseCaseWithMetrics) List(ctx context.Context, owner uuid.UUID) ([]*domain.APIToken, error) {
	start := time.Now()
	tokens, err := t.next.List(ctx, owner)
	t.record(ctx, "token_list", start, err)
	return tokens, err
}

func (t *tokenUseCaseWithMetrics) Revoke(ctx context.Context, owner uuid.UUID, tokenID uuid.UUID) error {
	start := time.Now()
	err := t.next.Revoke(ctx, owner, tokenID)
	t.record(ctx, "token_revoke", start, err)
	return err
}

func (t *tokenUseCaseWithMetrics) Delete(ctx context.Context, owner uuid.UUID, tokenID uuid.UUID) error {
	start := time.Now()
	err := t.next.Delete(ctx, owner, tokenID)
	t.record(ctx, "token_delete", start, err)
	return err
}

func (t *tokenUseCaseWithMetrics) Verify(
	ctx context.Context,
	presented string,
	required domain.Permission,
) (*domain.Principal, error) {
	start := time.Now()
	principal, err := t.next.Verify(ctx, presented, required)
	t.record(ctx, "token_verify", start, err)
	return principal, err
}
