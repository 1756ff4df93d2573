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

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	// BINARY(16) id column
	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `INSERT INTO users (id, name, email, role, approval_status, approved_at, rejected_reason,
			  created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		uuidBytes,
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
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Persistence(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT id, name, email, role, approval_status, approved_at, rejected_reason,
			  created_at, updated_at
			  FROM users WHERE id = ?`

	var idBytes []byte
	err = querier.QueryRowContext(ctx, query, uuidBytes).Scan(
		&idBytes,
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

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &user, nil
}

// UpdateApprovalStatus sets the approval status. approved_at is stamped only when approving.
func (r *MySQLUserRepository) UpdateApprovalStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ApprovalStatus,
	reason *string,
) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	now := time.Now().UTC()
	var approvedAt *time.Time
	if status == domain.ApprovalApproved {
		approvedAt = &now
	}

	query := `UPDATE users SET approval_status = ?, approved_at = ?, rejected_reason = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, status, approvedAt, reason, now, uuidBytes)
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

// isMySQLUniqueViolation checks if the error is a MySQL duplicate entry error
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
