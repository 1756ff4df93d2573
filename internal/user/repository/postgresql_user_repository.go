// Package repository provides persistence for user identities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/database"
	apperrors "github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/user/domain"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, name, email, role, approval_status, approved_at, rejected_reason,
			  created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.Role,
		user.ApprovalStatus,
		user.ApprovedAt,
		user.RejectedReason,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Persistence(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, role, approval_status, approved_at, rejected_reason,
			  created_at, updated_at
			  FROM users WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.ApprovalStatus,
		&user.ApprovedAt,
		&user.RejectedReason,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Persistence(err, "failed to get user by id")
	}

	return &user, nil
}

// UpdateApprovalStatus sets the approval status. approved_at is stamped only when approving.
func (r *PostgreSQLUserRepository) UpdateApprovalStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ApprovalStatus,
	reason *string,
) error {
	querier := database.GetTx(ctx, r.db)

	now := time.Now().UTC()
	var approvedAt *time.Time
	if status == domain.ApprovalApproved {
		approvedAt = &now
	}

	query := `UPDATE users SET approval_status = $1, approved_at = $2, rejected_reason = $3, updated_at = $4
			  WHERE id = $5`

	result, err := querier.ExecContext(ctx, query, status, approvedAt, reason, now, id)
	if err != nil {
		return apperrors.Persistence(err, "failed to update approval status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
