package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	userDomain "github.com/allisson/vmadmin/internal/user/domain"
	userMocks "github.com/allisson/vmadmin/internal/user/usecase/mocks"
)

func TestRunCreateUser(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	userID := uuid.Must(uuid.NewV7())
	input := userDomain.CreateUserInput{Name: "Ana", Email: "ana@example.com", Role: userDomain.RoleSuperadmin}
	user := &userDomain.User{
		ID:             userID,
		Name:           "Ana",
		Email:          "ana@example.com",
		Role:           userDomain.RoleSuperadmin,
		ApprovalStatus: userDomain.ApprovalApproved,
	}

	t.Run("text", func(t *testing.T) {
		mockUseCase := &userMocks.MockUseCase{}
		mockUseCase.On("Create", ctx, input).Return(user, nil)

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, "Ana", "ana@example.com", "superadmin", "text",
			IOTuple{Writer: &out})

		require.NoError(t, err)
		require.Contains(t, out.String(), userID.String())
		require.Contains(t, out.String(), "Approval status: approved")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		mockUseCase := &userMocks.MockUseCase{}
		mockUseCase.On("Create", ctx, input).Return(user, nil)

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, "Ana", "ana@example.com", "superadmin", "json",
			IOTuple{Writer: &out})

		require.NoError(t, err)
		require.Contains(t, out.String(), `"id": "`+userID.String()+`"`)
		require.Contains(t, out.String(), `"approval_status": "approved"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("use case error", func(t *testing.T) {
		mockUseCase := &userMocks.MockUseCase{}
		mockUseCase.On("Create", ctx, input).Return(nil, errors.New("boom"))

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, "Ana", "ana@example.com", "superadmin", "text",
			IOTuple{Writer: &out})

		require.ErrorContains(t, err, "failed to create user")
		require.Empty(t, out.String())
	})
}

func TestRunSetUserApproval(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	userID := uuid.Must(uuid.NewV7())

	t.Run("approve", func(t *testing.T) {
		mockUseCase := &userMocks.MockUseCase{}
		mockUseCase.On("SetApprovalStatus", ctx, userID, userDomain.ApprovalApproved, "").Return(nil)

		var out bytes.Buffer
		err := RunSetUserApproval(ctx, mockUseCase, logger, userID.String(), "approved", "", IOTuple{Writer: &out})

		require.NoError(t, err)
		require.Contains(t, out.String(), "is now approved")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("reject with reason", func(t *testing.T) {
		mockUseCase := &userMocks.MockUseCase{}
		mockUseCase.On("SetApprovalStatus", ctx, userID, userDomain.ApprovalRejected, "unknown operator").
			Return(nil)

		var out bytes.Buffer
		err := RunSetUserApproval(ctx, mockUseCase, logger, userID.String(), "rejected", "unknown operator",
			IOTuple{Writer: &out})

		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		mockUseCase := &userMocks.MockUseCase{}

		err := RunSetUserApproval(ctx, mockUseCase, logger, "not-a-uuid", "approved", "",
			IOTuple{Writer: &bytes.Buffer{}})

		require.ErrorContains(t, err, "invalid user id")
		mockUseCase.AssertNotCalled(t, "SetApprovalStatus")
	})
}
