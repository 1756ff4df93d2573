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

// MySQLTokenRepository implements APIToken persistence for MySQL.
// Uses BINARY(16) for UUIDs and a JSON permissions column.
type MySQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new APIToken. Returns an ErrPersistence-wrapped error if the store
// rejects the write.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	querier := database.GetTx(ctx, m.db)

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api token id")
	}

	ownerID, err := token.OwnerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal owner id")
	}

	permissions, err := json.Marshal(token.Permissions)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal permissions")
	}

	query := `INSERT INTO api_tokens (id, owner_id, name, token_hash, token_prefix, permissions,
			  expires_at, last_used_at, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		ownerID,
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
func (m *MySQLTokenRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.APIToken, error) {
	querier := database.GetTx(ctx, m.db)

	owner, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal owner id")
	}

	query := `SELECT id, owner_id, name, token_prefix, permissions, expires_at, last_used_at,
			  is_active, created_at, updated_at
			  FROM api_tokens WHERE owner_id = ? ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to list api tokens")
	}
	defer func() {
		_ = rows.Close()
	}()

	tokens := make([]*domain.APIToken, 0)
	for rows.Next() {
		var token domain.APIToken
		var idBytes, ownerBytes, permissions []byte
		if err := rows.Scan(
			&idBytes,
			&ownerBytes,
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
		if err := decodeMySQLToken(&token, idBytes, ownerBytes, permissions); err != nil {
			return nil, err
		}
		tokens = append(tokens, &token)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(err, "failed to iterate api tokens")
	}

	return tokens, nil
}

// Get retrieves an APIToken by id. Returns ErrTokenNotFound if absent.
func (m *MySQLTokenRepository) Get(ctx context.Context, tokenID uuid.UUID) (*domain.APIToken, error) {
	id, err := tokenID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal api token id")
	}

	query := `SELECT id, owner_id, name, token_hash, token_prefix, permissions, expires_at,
			  last_used_at, is_active, created_at, updated_at
			  FROM api_tokens WHERE id = ?`

	return m.getOne(ctx, query, id)
}

// GetByTokenHash retrieves an APIToken by digest. Returns ErrTokenNotFound if absent.
func (m *MySQLTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.APIToken, error) {
	query := `SELECT id, owner_id, name, token_hash, token_prefix, permissions, expires_at,
			  last_used_at, is_active, created_at, updated_at
			  FROM api_tokens WHERE token_hash = ?`

	return m.getOne(ctx, query, tokenHash)
}

func (m *MySQLTokenRepository) getOne(ctx context.Context, query string, arg any) (*domain.APIToken, error) {
	querier := database.GetTx(ctx, m.db)

	var token domain.APIToken
	var idBytes, ownerBytes, permissions []byte

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes,
		&ownerBytes,
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

	if err := decodeMySQLToken(&token, idBytes, ownerBytes, permissions); err != nil {
		return nil, err
	}

	return &token, nil
}

func decodeMySQLToken(token *domain.APIToken, idBytes, ownerBytes, permissions []byte) error {
	if err := token.ID.UnmarshalBinary(idBytes); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal api token id")
	}
	if err := token.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal owner id")
	}
	if err := json.Unmarshal(permissions, &token.Permissions); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal permissions")
	}
	return nil
}

// Deactivate marks the token inactive. Calling it on an inactive or missing token is a no-op.
func (m *MySQLTokenRepository) Deactivate(ctx context.Context, tokenID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api token id")
	}

	query := `UPDATE api_tokens SET is_active = false, updated_at = ? WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return apperrors.Persistence(err, "failed to deactivate api token")
	}
	return nil
}

// Delete removes the token row. Deleting a missing token is a no-op.
func (m *MySQLTokenRepository) Delete(ctx context.Context, tokenID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api token id")
	}

	if _, err := querier.ExecContext(ctx, `DELETE FROM api_tokens WHERE id = ?`, id); err != nil {
		return apperrors.Persistence(err, "failed to delete api token")
	}
	return nil
}

// TouchLastUsed records usedAt as the token's last successful verification.
func (m *MySQLTokenRepository) TouchLastUsed(ctx context.Context, tokenHash string, usedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE api_tokens SET last_used_at = ? WHERE token_hash = ?`

	if _, err := querier.ExecContext(ctx, query, usedAt, tokenHash); err != nil {
		return apperrors.Persistence(err, "failed to touch api token")
	}
	return nil
}

// NewMySQLTokenRepository creates a new MySQL APIToken repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}
