// Package usecase implements the identity service: user registration, approval review and
// the approval lookup used when verifying API tokens.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/vmadmin/internal/user/domain"
	appValidation "github.com/allisson/vmadmin/internal/validation"
)

// UseCase defines the interface for user business logic operations
type UseCase interface {
	Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetApprovalStatus(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, reason string) error
	IsApproved(ctx context.Context, id uuid.UUID) (bool, error)
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateApprovalStatus(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, reason *string) error
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	userRepo UserRepository
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(userRepo UserRepository) UseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) validateCreateUserInput(input domain.CreateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Role,
			validation.Required.Error("role is required"),
			validation.In(domain.RoleSuperadmin, domain.RoleAdmin, domain.RoleUser).Error("unknown role"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create registers a user. Every user starts pending except a superadmin, who is approved
// at creation since nobody else could review them.
func (uc *UserUseCase) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	if input.Role == "" {
		input.Role = domain.RoleUser
	}
	if err := uc.validateCreateUserInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uuid.Must(uuid.NewV7()),
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.TrimSpace(strings.ToLower(input.Email)),
		Role:           input.Role,
		ApprovalStatus: domain.ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if user.Role == domain.RoleSuperadmin {
		user.ApprovalStatus = domain.ApprovalApproved
		user.ApprovedAt = &now
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (uc *UserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// SetApprovalStatus records a review decision. The reason is kept only for rejections.
func (uc *UserUseCase) SetApprovalStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ApprovalStatus,
	reason string,
) error {
	if !status.IsValid() {
		return domain.ErrInvalidApprovalStatus
	}

	var rejectedReason *string
	if status == domain.ApprovalRejected && strings.TrimSpace(reason) != "" {
		trimmed := strings.TrimSpace(reason)
		rejectedReason = &trimmed
	}

	return uc.userRepo.UpdateApprovalStatus(ctx, id, status, rejectedReason)
}

// IsApproved reports whether the user exists and is approved. An unknown user is not approved.
func (uc *UserUseCase) IsApproved(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsApproved(), nil
}
