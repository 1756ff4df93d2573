// Package repository provides API token persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/apitoken/domain"
	"github.com/allisson/vmadmin/internal/database"
	apperrors "github.com/allisson/vmadmin/internal/errors"
)

// PostgreSQLTokenRepository implements APIToken persistence for PostgreSQL.
// Uses native UUID types and a JSONB permissions column.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new APIToken. Returns an ErrPersistence-wrapped error if the store
// rejects the write.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	querier := database.GetTx(ctx, p.db)

	permissions, err := json.Marshal(token.Permissions)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal permissions")
	}

	query := `INSERT INTO api_tokens (id, owner_id, name, token_hash, token_prefix, permissions,
			  expires_at, last_used_at, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.OwnerID,
		token.Name,
		token.TokenHash,
		token.TokenPrefix,
		permissions,
		token.ExpiresAt,
		token.LastUsedAt,
		token.IsActive,
		token.CreatedAt,
		token.UpdatedAt,
	)
	if err != nil {
		return apperrors.Persistence(err, "failed to create api token")
	}
	return nil
}

// ListByOwner returns the owner's tokens newest first. TokenHash is never selected.
func (p *PostgreSQLTokenRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.APIToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, name, token_prefix, permissions, expires_at, last_used_at,
			  is_active, created_at, updated_at
			  FROM api_tokens WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to list api tokens")
	}
	defer func() {
		_ = rows.Close()
	}()

	tokens := make([]*domain.APIToken, 0)
	for rows.Next() {
		var token domain.APIToken
		var permissions []byte
		if err := rows.Scan(
			&token.ID,
			&token.OwnerID,
			&token.Name,
			&token.TokenPrefix,
			&permissions,
			&token.ExpiresAt,
			&token.LastUsedAt,
			&token.IsActive,
			&token.CreatedAt,
			&token.UpdatedAt,
		); err != nil {
			return nil, apperrors.Persistence(err, "failed to scan api token")
		}
		if err := json.Unmarshal(permissions, &token.Permissions); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal permissions")
		}
		tokens = append(tokens, &token)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(err, "failed to iterate api tokens")
	}

	return tokens, nil
}

// Get retrieves an APIToken by id. Returns ErrTokenNotFound if absent.
func (p *PostgreSQLTokenRepository) Get(ctx context.Context, tokenID uuid.UUID) (*domain.APIToken, error) {
	query := `SELECT id, owner_id, name, token_hash, token_prefix, permissions, expires_at,
			  last_used_at, is_active, created_at, updated_at
			  FROM api_tokens WHERE id = $1`

	return p.getOne(ctx, query, tokenID)
}

// GetByTokenHash retrieves an APIToken by digest. Returns ErrTokenNotFound if absent.
func (p *PostgreSQLTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*domain.APIToken, error) {
	query := `SELECT id, owner_id, name, token_hash, token_prefix, permissions, expires_at,
			  last_used_at, is_active, created_at, updated_at
			  FROM api_tokens WHERE token_hash = $1`

	return p.getOne(ctx, query, tokenHash)
}

func (p *PostgreSQLTokenRepository) getOne(
	ctx context.Context,
	query string,
	arg any,
) (*domain.APIToken, error) {
	querier := database.GetTx(ctx, p.db)

	var token domain.APIToken
	var permissions []byte

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&token.ID,
		&token.OwnerID,
		&token.Name,
		&token.TokenHash,
		&token.TokenPrefix,
		&permissions,
		&token.ExpiresAt,
		&token.LastUsedAt,
		&token.IsActive,
		&token.CreatedAt,
		&token.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, apperrors.Persistence(err, "failed to get api token")
	}

	if err := json.Unmarshal(permissions, &token.Permissions); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal permissions")
	}

	return &token, nil
}

// Deactivate marks the token inactive. Calling it on an inactive or missing token is a no-op.
func (p *PostgreSQLTokenRepository) Deactivate(ctx context.Context, tokenID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE api_tokens SET is_active = false, updated_at = $1 WHERE id = $2`

	if _, err := querier.ExecContext(ctx, query, time.Now().UTC(), tokenID); err != nil {
		return apperrors.Persistence(err, "failed to deactivate api token")
	}
	return nil
}

// Delete removes the token row. Deleting a missing token is a no-op.
func (p *PostgreSQLTokenRepository) Delete(ctx context.Context, tokenID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM api_tokens WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, tokenID); err != nil {
		return apperrors.Persistence(err, "failed to delete api token")
	}
	return nil
}

// TouchLastUsed records usedAt as the token's last successful verification.
func (p *PostgreSQLTokenRepository) TouchLastUsed(ctx context.Context, tokenHash string, usedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE api_tokens SET last_used_at = $1 WHERE token_hash = $2`

	if _, err := querier.ExecContext(ctx, query, usedAt, tokenHash); err != nil {
		return apperrors.Persistence(err, "failed to touch api token")
	}
	return nil
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL APIToken repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}
