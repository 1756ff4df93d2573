// Package repository provides product persistence for PostgreSQL and MySQL.
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

const productColumns = `id, name, description, price, stock, status, image_url, created_at, updated_at`

// PostgreSQLProductRepository implements Product persistence for PostgreSQL.
type PostgreSQLProductRepository struct {
	db *sql.DB
}

// Create inserts a new product.
func (p *PostgreSQLProductRepository) Create(ctx context.Context, product *domain.Product) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO products (` + productColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		product.ID,
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
func (p *PostgreSQLProductRepository) Update(ctx context.Context, product *domain.Product) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE products SET name = $1, description = $2, price = $3, stock = $4,
			  status = $5, image_url = $6, updated_at = $7 WHERE id = $8`

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
		product.ID,
	)
	if err != nil {
		return apperrors.Persistence(err, "failed to update product")
	}
	return requireAffected(result, "failed to update product")
}

// Delete removes a product. Returns ErrProductNotFound if absent.
func (p *PostgreSQLProductRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return apperrors.Persistence(err, "failed to delete product")
	}
	return requireAffected(result, "failed to delete product")
}

// Get retrieves a product by id. Returns ErrProductNotFound if absent.
func (p *PostgreSQLProductRepository) Get(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var product domain.Product
	err := querier.QueryRowContext(ctx, query, productID).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.Status,
		&product.ImageURL,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, apperrors.Persistence(err, "failed to get product")
	}
	return &product, nil
}

// List returns every product, newest first.
func (p *PostgreSQLProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return p.list(ctx, query)
}

// ListActive returns active products, newest first.
func (p *PostgreSQLProductRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE status = $1 ORDER BY created_at DESC`
	return p.list(ctx, query, domain.StatusActive)
}

func (p *PostgreSQLProductRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to list products")
	}
	defer func() {
		_ = rows.Close()
	}()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.Stock,
			&product.Status,
			&product.ImageURL,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, apperrors.Persistence(err, "failed to scan product")
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(err, "failed to iterate products")
	}

	return products, nil
}

func requireAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence(err, message)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// NewPostgreSQLProductRepository creates a new PostgreSQL Product repository.
func NewPostgreSQLProductRepository(db *sql.DB) *PostgreSQLProductRepository {
	return &PostgreSQLProductRepository{db: db}
}
