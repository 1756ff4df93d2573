package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/vmadmin/internal/catalog/domain"
	"github.com/allisson/vmadmin/internal/catalog/usecase"
	usecaseMocks "github.com/allisson/vmadmin/internal/catalog/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectRecord(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "catalog", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "catalog", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestProductUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	product := &domain.Product{ID: id, Name: "Chips", Status: domain.StatusActive}

	t.Run("Create success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockProductUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewProductUseCaseWithMetrics(mockNext, mockMetrics)

		input := domain.ProductInput{Name: "Chips"}
		mockNext.On("Create", ctx, input).Return(product, nil).Once()
		expectRecord(mockMetrics, ctx, "product_create", "success")

		res, err := uc.Create(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, product, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ToggleStatus error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockProductUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewProductUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("ToggleStatus", ctx, id).Return(nil, domain.ErrProductNotFound).Once()
		expectRecord(mockMetrics, ctx, "product_toggle_status", "error")

		_, err := uc.ToggleStatus(ctx, id)

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("List, Get, Update and Delete", func(t *testing.T) {
		mockNext := &usecaseMocks.MockProductUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewProductUseCaseWithMetrics(mockNext, mockMetrics)

		input := domain.ProductInput{Name: "Chips"}
		mockNext.On("List", ctx).Return([]*domain.Product{product}, nil).Once()
		mockNext.On("Get", ctx, id).Return(product, nil).Once()
		mockNext.On("Update", ctx, id, input).Return(product, nil).Once()
		mockNext.On("Delete", ctx, id).Return(errors.New("boom")).Once()
		expectRecord(mockMetrics, ctx, "product_list", "success")
		expectRecord(mockMetrics, ctx, "product_get", "success")
		expectRecord(mockMetrics, ctx, "product_update", "success")
		expectRecord(mockMetrics, ctx, "product_delete", "error")

		_, _ = uc.List(ctx)
		_, _ = uc.Get(ctx, id)
		_, _ = uc.Update(ctx, id, input)
		assert.Error(t, uc.Delete(ctx, id))

		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
