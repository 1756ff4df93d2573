// Package mocks provides testify mocks of the API token use case for handler and decorator tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/vmadmin/internal/apitoken/domain"
	"github.com/allisson/vmadmin/internal/apitoken/usecase"
)

// MockTokenUseCase is a mock implementation of usecase.TokenUseCase.
type MockTokenUseCase struct {
	mock.Mock
}

func (m *MockTokenUseCase) Create(
	ctx context.Context,
	owner uuid.UUID,
	input usecase.CreateTokenInput,
) (*usecase.CreateTokenOutput, error) {
	args := m.Called(ctx, owner, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateTokenOutput), args.Error(1)
}

func (m *MockTokenUseCase) List(ctx context.Context, owner uuid.UUID) ([]*domain.APIToken, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.APIToken), args.Error(1)
}

func (m *MockTokenUseCase) Revoke(ctx context.Context, owner uuid.UUID, tokenID uuid.UUID) error {
	args := m.Called(ctx, owner, tokenID)
	return args.Error(0)
}

func (m *MockTokenUseCase) Delete(ctx context.Context, owner uuid.UUID, tokenID uuid.UUID) error {
	args := m.Called(ctx, owner, tokenID)
	return args.Error(0)
}

func (m *MockTokenUseCase) Verify(
	ctx context.Context,
	presented string,
	required domain.Permission,
) (*domain.Principal, error) {
	args := m.Called(ctx, presented, required)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}
