package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/catalog/domain"
	"github.com/allisson/vmadmin/internal/database"
	apperrors "github.com/allisson/vmadmin/internal/errors"
)

// MySQLProductRepository implements Product persistence for MySQL.
// Uses BINARY(16) for UUIDs.
type MySQLProductRepository struct {
	db *sql.DB
}

// Create inserts a new product.
func (m *MySQLProductRepository) Create(ctx context.Context, product *domain.Product) error {
	querier := database.GetTx(ctx, m.db)

	id, err := product.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}

	query := `INSERT INTO products (` + productColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Status,
		product.ImageURL,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return apperrors.Persistence(err, "failed to create product")
	}
	return nil
}

// Update overwrites the writable fields of a product. Returns ErrProductNotFound if absent.
func (m *MySQLProductRepository) Update(ctx context.Context, product *domain.Product) error {
	querier := database.GetTx(ctx, m.db)

	id, err := product.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}

	query := `UPDATE products SET name = ?, description = ?, price = ?, stock = ?,
			  status = ?, image_url = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Status,
		product.ImageURL,
		product.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Persistence(err, "failed to update product")
	}
	// MySQL reports zero affected rows when nothing changed, so fall back to an existence check.
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence(err, "failed to update product")
	}
	if affected == 0 {
		_, err := m.Get(ctx, product.ID)
		return err
	}
	return nil
}

// Delete removes a product. Returns ErrProductNotFound if absent.
func (m *MySQLProductRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := productID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return apperrors.Persistence(err, "failed to delete product")
	}
	return requireAffected(result, "failed to delete product")
}

// Get retrieves a product by id. Returns ErrProductNotFound if absent.
func (m *MySQLProductRepository) Get(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := productID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal product id")
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	product, err := scanMySQLProduct(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, apperrors.Persistence(err, "failed to get product")
	}
	return product, nil
}

// List returns every product, newest first.
func (m *MySQLProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return m.list(ctx, query)
}

// ListActive returns active products, newest first.
func (m *MySQLProductRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE status = ? ORDER BY created_at DESC`
	return m.list(ctx, query, domain.StatusActive)
}

func (m *MySQLProductRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to list products")
	}
	defer func() {
		_ = rows.Close()
	}()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanMySQLProduct(rows)
		if err != nil {
			return nil, apperrors.Persistence(err, "failed to scan product")
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(err, "failed to iterate products")
	}

	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	var id []byte

	if err := row.Scan(
		&id,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.Status,
		&product.ImageURL,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := product.ID.UnmarshalBinary(id); err != nil {
		return nil, err
	}
	return &product, nil
}

// NewMySQLProductRepository creates a new MySQL Product repository.
func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}
