// Package mocks provides testify mocks of the webhook use cases for handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	catalogDomain "github.com/allisson/vmadmin/internal/catalog/domain"
	"github.com/allisson/vmadmin/internal/webhook/domain"
)

// MockConfigUseCase is a mock implementation of usecase.ConfigUseCase.
type MockConfigUseCase struct {
	mock.Mock
}

func (m *MockConfigUseCase) Save(ctx context.Context, cfg *domain.Config) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockConfigUseCase) Load(ctx context.Context) (*domain.Config, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Config), args.Bool(1), args.Error(2)
}

// MockDispatcher is a mock implementation of usecase.Dispatcher.
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Notify(ctx context.Context, eventType string, eventData map[string]any) {
	m.Called(ctx, eventType, eventData)
}

func (m *MockDispatcher) PublishProductEvent(
	ctx context.Context,
	product *catalogDomain.Product,
	action catalogDomain.Action,
) {
	m.Called(ctx, product, action)
}

func (m *MockDispatcher) Deliver(ctx context.Context, eventType string, eventData map[string]any) error {
	args := m.Called(ctx, eventType, eventData)
	return args.Error(0)
}

func (m *MockDispatcher) SendTest(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatcher) Run(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
