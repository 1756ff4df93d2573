package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/vmadmin/internal/catalog/domain"
)

func mustBinary(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLProductRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLProductRepository(db)
	product := newTestProduct()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs(
			mustBinary(t, product.ID),
			product.Name,
			*product.Description,
			product.Price,
			product.Stock,
			"active",
			nil,
			product.CreatedAt,
			product.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), product))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLProductRepository_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLProductRepository(db)
		product := newTestProduct()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET name = ?")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), product))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnchangedRowStillExists", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLProductRepository(db)
		product := newTestProduct()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE products")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
			WillReturnRows(sqlmock.NewRows(productRowColumns).AddRow(
				mustBinary(t, product.ID), product.Name, nil, product.Price, product.Stock,
				"active", nil, product.CreatedAt, product.UpdatedAt,
			))

		require.NoError(t, repo.Update(context.Background(), product))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLProductRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE products")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).WillReturnError(sql.ErrNoRows)

		err := repo.Update(context.Background(), newTestProduct())
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestMySQLProductRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLProductRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = ?")).
		WithArgs(mustBinary(t, id)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), domain.ErrProductNotFound)
}

func TestMySQLProductRepository_GetAndList(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLProductRepository(db)
		product := newTestProduct()
		imageURL := "https://cdn.example.com/water.png"

		mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
			WithArgs(mustBinary(t, product.ID)).
			WillReturnRows(sqlmock.NewRows(productRowColumns).AddRow(
				mustBinary(t, product.ID), product.Name, nil, product.Price, product.Stock,
				"active", imageURL, product.CreatedAt, product.UpdatedAt,
			))

		got, err := repo.Get(context.Background(), product.ID)

		require.NoError(t, err)
		assert.Equal(t, product.ID, got.ID)
		require.NotNil(t, got.ImageURL)
		assert.Equal(t, imageURL, *got.ImageURL)
	})

	t.Run("ListActive", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLProductRepository(db)
		product := newTestProduct()

		mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE status = ? ORDER BY created_at DESC")).
			WithArgs("active").
			WillReturnRows(sqlmock.NewRows(productRowColumns).AddRow(
				mustBinary(t, product.ID), product.Name, nil, product.Price, product.Stock,
				"active", nil, product.CreatedAt, product.UpdatedAt,
			))

		products, err := repo.ListActive(context.Background())

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, product.ID, products[0].ID)
	})
}
