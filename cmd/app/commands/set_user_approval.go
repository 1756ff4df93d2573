package commands

import (
	"context"
	"fmt"
	"log/slog"

	userDomain "github.com/allisson/vmadmin/internal/user/domain"
	userUseCase "github.com/allisson/vmadmin/internal/user/usecase"
)

// RunSetUserApproval records a registration review decision. Tokens owned by a user who
// is not approved are refused at verification time.
func RunSetUserApproval(
	ctx context.Context,
	userUseCase userUseCase.UseCase,
	logger *slog.Logger,
	userID string,
	status string,
	reason string,
	io IOTuple,
) error {
	id, err := parseID("user id", userID)
	if err != nil {
		return err
	}

	if err := userUseCase.SetApprovalStatus(ctx, id, userDomain.ApprovalStatus(status), reason); err != nil {
		return fmt.Errorf("failed to set approval status: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "User %s is now %s\n", id, status)

	logger.Info("user approval status updated",
		slog.String("user_id", id.String()),
		slog.String("approval_status", status),
	)
	return nil
}
