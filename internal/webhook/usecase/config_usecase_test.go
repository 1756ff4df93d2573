package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/webhook/domain"
	"github.com/allisson/vmadmin/internal/webhook/http/dto"
)

// MockConfigRepository is a mock implementation of ConfigRepository
type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) Save(ctx context.Context, cfg *domain.Config) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockConfigRepository) Load(ctx context.Context) (*domain.Config, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Config), args.Bool(1), args.Error(2)
}

func TestConfigUseCase_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("NormalizesAndSaves", func(t *testing.T) {
		repo := &MockConfigRepository{}
		uc := NewConfigUseCase(repo)

		var saved *domain.Config
		repo.On("Save", ctx, mock.AnythingOfType("*domain.Config")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Config) }).
			Return(nil).
			Once()

		err := uc.Save(ctx, &domain.Config{URL: " https://hooks.example.com ", Method: "patch", Timeout: 5})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "https://hooks.example.com", saved.URL)
		assert.Equal(t, "PATCH", saved.Method)
		assert.Equal(t, domain.AuthNone, saved.Auth.Type)
		assert.NotNil(t, saved.CustomHeaders)
	})

	t.Run("RejectsInvalid", func(t *testing.T) {
		repo := &MockConfigRepository{}
		uc := NewConfigUseCase(repo)

		err := uc.Save(ctx, &domain.Config{URL: "not a url", Method: "POST"})

		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("PersistenceError", func(t *testing.T) {
		repo := &MockConfigRepository{}
		uc := NewConfigUseCase(repo)
		repo.On("Save", ctx, mock.Anything).Return(apperrors.Persistence(errors.New("locked"), "failed")).Once()

		err := uc.Save(ctx, &domain.Config{URL: "https://hooks.example.com", Method: "POST"})

		assert.ErrorIs(t, err, apperrors.ErrPersistence)
	})
}

func TestConfigUseCase_Save_RedactedCredential(t *testing.T) {
	ctx := context.Background()

	storedWith := func(auth domain.Auth) *domain.Config {
		cfg := domain.DefaultConfig()
		cfg.URL = "https://hooks.example.com/old"
		cfg.Auth = auth
		return cfg
	}

	// resubmit mirrors a client that fetches the configuration, edits the URL and
	// sends the document back.
	resubmit := func(stored *domain.Config) *domain.Config {
		resp := dto.MapConfigToResponse(stored, true)
		req := dto.WebhookConfigRequest{
			URL:          "https://hooks.example.com/new",
			Method:       resp.Method,
			Auth:         resp.Auth,
			Timeout:      &resp.Timeout,
			Retries:      &resp.Retries,
			BodyTemplate: &resp.BodyTemplate,
			VerifySSL:    &resp.VerifySSL,
		}
		return req.ToDomain()
	}

	tests := []struct {
		name  string
		auth  domain.Auth
		check func(t *testing.T, saved domain.Auth)
	}{
		{
			name: "Bearer",
			auth: domain.Auth{Type: domain.AuthBearer, Bearer: &domain.BearerAuth{Token: "live-token"}},
			check: func(t *testing.T, saved domain.Auth) {
				require.NotNil(t, saved.Bearer)
				assert.Equal(t, "live-token", saved.Bearer.Token)
			},
		},
		{
			name: "APIKey",
			auth: domain.Auth{
				Type:   domain.AuthAPIKey,
				APIKey: &domain.APIKeyAuth{Header: "X-API-Key", Value: "live-key"},
			},
			check: func(t *testing.T, saved domain.Auth) {
				require.NotNil(t, saved.APIKey)
				assert.Equal(t, "X-API-Key", saved.APIKey.Header)
				assert.Equal(t, "live-key", saved.APIKey.Value)
			},
		},
		{
			name: "Basic",
			auth: domain.Auth{Type: domain.AuthBasic, Basic: &domain.BasicAuth{Username: "vm", Password: "live-pass"}},
			check: func(t *testing.T, saved domain.Auth) {
				require.NotNil(t, saved.Basic)
				assert.Equal(t, "vm", saved.Basic.Username)
				assert.Equal(t, "live-pass", saved.Basic.Password)
			},
		},
	}

	for _, tt := range tests {
		t.Run("KeepsStored"+tt.name, func(t *testing.T) {
			repo := &MockConfigRepository{}
			uc := NewConfigUseCase(repo)
			stored := storedWith(tt.auth)

			var saved *domain.Config
			repo.On("Load", ctx).Return(stored, true, nil).Once()
			repo.On("Save", ctx, mock.AnythingOfType("*domain.Config")).
				Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Config) }).
				Return(nil).
				Once()

			err := uc.Save(ctx, resubmit(stored))

			require.NoError(t, err)
			require.NotNil(t, saved)
			assert.Equal(t, "https://hooks.example.com/new", saved.URL)
			assert.False(t, saved.Auth.Redacted())
			tt.check(t, saved.Auth)
			repo.AssertExpectations(t)
		})
	}

	t.Run("RejectsWhenNothingStored", func(t *testing.T) {
		repo := &MockConfigRepository{}
		uc := NewConfigUseCase(repo)
		repo.On("Load", ctx).Return(nil, false, nil).Once()

		cfg := domain.DefaultConfig()
		cfg.URL = "https://hooks.example.com"
		cfg.Auth = domain.Auth{Type: domain.AuthBearer, Bearer: &domain.BearerAuth{Token: domain.RedactedSecret}}

		err := uc.Save(ctx, cfg)

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("RejectsWhenAuthTypeChanged", func(t *testing.T) {
		repo := &MockConfigRepository{}
		uc := NewConfigUseCase(repo)
		stored := storedWith(domain.Auth{Type: domain.AuthBearer, Bearer: &domain.BearerAuth{Token: "live-token"}})
		repo.On("Load", ctx).Return(stored, true, nil).Once()

		cfg := storedWith(domain.Auth{
			Type:  domain.AuthBasic,
			Basic: &domain.BasicAuth{Username: "vm", Password: domain.RedactedSecret},
		})

		err := uc.Save(ctx, cfg)

		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("LoadError", func(t *testing.T) {
		repo := &MockConfigRepository{}
		uc := NewConfigUseCase(repo)
		repo.On("Load", ctx).Return(nil, false, apperrors.Persistence(errors.New("locked"), "failed")).Once()

		cfg := storedWith(domain.Auth{Type: domain.AuthBearer, Bearer: &domain.BearerAuth{Token: domain.RedactedSecret}})

		err := uc.Save(ctx, cfg)

		assert.ErrorIs(t, err, apperrors.ErrPersistence)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestConfigUseCase_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsWhenAbsent", func(t *testing.T) {
		repo := &MockConfigRepository{}
		repo.On("Load", ctx).Return(nil, false, nil).Once()

		cfg, configured, err := NewConfigUseCase(repo).Load(ctx)

		require.NoError(t, err)
		assert.False(t, configured)
		assert.Equal(t, domain.DefaultConfig(), cfg)
	})

	t.Run("Stored", func(t *testing.T) {
		repo := &MockConfigRepository{}
		stored := domain.DefaultConfig()
		stored.URL = "https://hooks.example.com"
		repo.On("Load", ctx).Return(stored, true, nil).Once()

		cfg, configured, err := NewConfigUseCase(repo).Load(ctx)

		require.NoError(t, err)
		assert.True(t, configured)
		assert.Equal(t, stored, cfg)
	})
}
