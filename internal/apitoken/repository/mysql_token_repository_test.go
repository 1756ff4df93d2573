package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/vmadmin/internal/apitoken/domain"
	apperrors "github.com/allisson/vmadmin/internal/errors"
)

func mustBinary(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestNewMySQLTokenRepository(t *testing.T) {
	db, _ := newMockDB(t)

	repo := NewMySQLTokenRepository(db)
	assert.IsType(t, &MySQLTokenRepository{}, repo)
}

func TestMySQLTokenRepository_Create(t *testing.T) {
	t.Run("Success_BinaryUUIDs", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTokenRepository(db)
		token := newTestToken()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO api_tokens")).
			WithArgs(
				mustBinary(t, token.ID),
				mustBinary(t, token.OwnerID),
				token.Name,
				token.TokenHash,
				token.TokenPrefix,
				[]byte(`["webhook_receive","api_access"]`),
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
				true,
				token.CreatedAt,
				token.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), token))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_StoreRejectsWrite", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTokenRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO api_tokens")).
			WillReturnError(errors.New("duplicate entry"))

		assert.ErrorIs(t, repo.Create(context.Background(), newTestToken()), apperrors.ErrPersistence)
	})
}

func TestMySQLTokenRepository_ListByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLTokenRepository(db)
	ownerID := uuid.Must(uuid.NewV7())
	tokenID := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	rows := sqlmock.NewRows(listColumns).AddRow(
		mustBinary(t, tokenID), mustBinary(t, ownerID), "ci", "vma_ci000000",
		[]byte(`["webhook_receive"]`), nil, nil, true, now, now,
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM api_tokens WHERE owner_id = ? ORDER BY created_at DESC")).
		WithArgs(mustBinary(t, ownerID)).
		WillReturnRows(rows)

	tokens, err := repo.ListByOwner(context.Background(), ownerID)

	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, tokenID, tokens[0].ID)
	assert.Equal(t, ownerID, tokens[0].OwnerID)
	assert.Empty(t, tokens[0].TokenHash)
	assert.Equal(t, []domain.Permission{domain.PermissionWebhookReceive}, tokens[0].Permissions)
}

func TestMySQLTokenRepository_GetByTokenHash(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTokenRepository(db)
		token := newTestToken()

		rows := sqlmock.NewRows(tokenColumns).AddRow(
			mustBinary(t, token.ID), mustBinary(t, token.OwnerID), token.Name, token.TokenHash,
			token.TokenPrefix, []byte(`["api_access"]`), nil, nil, false, token.CreatedAt, token.UpdatedAt,
		)
		mock.ExpectQuery(regexp.QuoteMeta("FROM api_tokens WHERE token_hash = ?")).
			WithArgs(token.TokenHash).
			WillReturnRows(rows)

		found, err := repo.GetByTokenHash(context.Background(), token.TokenHash)

		require.NoError(t, err)
		assert.Equal(t, token.ID, found.ID)
		assert.False(t, found.IsActive)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTokenRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM api_tokens WHERE token_hash = ?")).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByTokenHash(context.Background(), "missing")

		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})
}

func TestMySQLTokenRepository_Mutations(t *testing.T) {
	tokenID := uuid.Must(uuid.NewV7())

	t.Run("Deactivate", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTokenRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE api_tokens SET is_active = false, updated_at = ? WHERE id = ?")).
			WithArgs(sqlmock.AnyArg(), mustBinary(t, tokenID)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Deactivate(context.Background(), tokenID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTokenRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM api_tokens WHERE id = ?")).
			WithArgs(mustBinary(t, tokenID)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), tokenID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TouchLastUsed_Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTokenRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE api_tokens SET last_used_at = ?")).
			WillReturnError(errors.New("lock wait timeout"))

		err := repo.TouchLastUsed(context.Background(), "digest", time.Now().UTC())

		assert.ErrorIs(t, err, apperrors.ErrPersistence)
	})
}
