package commands

import (
	"context"
	"fmt"
	"log/slog"

	userDomain "github.com/allisson/vmadmin/internal/user/domain"
	userUseCase "github.com/allisson/vmadmin/internal/user/usecase"
)

// RunCreateUser registers an operator. Superadmins are approved immediately; every other
// role starts pending until set-user-approval is run.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase userUseCase.UseCase,
	logger *slog.Logger,
	name string,
	email string,
	role string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new user", slog.String("role", role))

	user, err := userUseCase.Create(ctx, userDomain.CreateUserInput{
		Name:  name,
		Email: email,
		Role:  userDomain.Role(role),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		if err := writeJSON(io.Writer, map[string]string{
			"id":              user.ID.String(),
			"email":           user.Email,
			"role":            string(user.Role),
			"approval_status": string(user.ApprovalStatus),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(io.Writer, "User created successfully!")
		_, _ = fmt.Fprintf(io.Writer, "User ID: %s\n", user.ID)
		_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", user.Email)
		_, _ = fmt.Fprintf(io.Writer, "Role: %s\n", user.Role)
		_, _ = fmt.Fprintf(io.Writer, "Approval status: %s\n", user.ApprovalStatus)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("approval_status", string(user.ApprovalStatus)),
	)
	return nil
}
