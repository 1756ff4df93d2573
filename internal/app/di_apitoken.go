package app

import (
	"fmt"

	apiTokenHTTP "github.com/allisson/vmadmin/internal/apitoken/http"
	apiTokenRepository "github.com/allisson/vmadmin/internal/apitoken/repository"
	apiTokenService "github.com/allisson/vmadmin/internal/apitoken/service"
	apiTokenUseCase "github.com/allisson/vmadmin/internal/apitoken/usecase"
	userRepository "github.com/allisson/vmadmin/internal/user/repository"
	userUseCase "github.com/allisson/vmadmin/internal/user/usecase"
)

// UserRepository returns the user repository based on database driver.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	var err error
	c.userRepositoryInit.Do(func() {
		c.userRepository, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepository"]; exists {
		return nil, storedErr
	}
	return c.userRepository, nil
}

// UserUseCase returns the identity service.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// CredentialGenerator returns the raw token generator.
func (c *Container) CredentialGenerator() apiTokenService.CredentialGenerator {
	c.credentialGeneratorInit.Do(func() {
		c.credentialGenerator = apiTokenService.NewCredentialGenerator()
	})
	return c.credentialGenerator
}

// APITokenRepository returns the api token repository based on database driver.
func (c *Container) APITokenRepository() (apiTokenUseCase.TokenRepository, error) {
	var err error
	c.apiTokenRepositoryInit.Do(func() {
		c.apiTokenRepository, err = c.initAPITokenRepository()
		if err != nil {
			c.initErrors["apiTokenRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiTokenRepository"]; exists {
		return nil, storedErr
	}
	return c.apiTokenRepository, nil
}

// APITokenUseCase returns the api token use case.
func (c *Container) APITokenUseCase() (apiTokenUseCase.TokenUseCase, error) {
	var err error
	c.apiTokenUseCaseInit.Do(func() {
		c.apiTokenUseCase, err = c.initAPITokenUseCase()
		if err != nil {
			c.initErrors["apiTokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiTokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.apiTokenUseCase, nil
}

// TokenHandler returns the api token HTTP handler.
func (c *Container) TokenHandler() (*apiTokenHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

// initUserRepository creates the user repository based on the database driver.
func (c *Container) initUserRepository() (userUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return userRepository.NewPostgreSQLUserRepository(db), nil
	case "mysql":
		return userRepository.NewMySQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserUseCase creates the identity service.
func (c *Container) initUserUseCase() (userUseCase.UseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}
	return userUseCase.NewUserUseCase(userRepo), nil
}

// initAPITokenRepository creates the api token repository based on the database driver.
func (c *Container) initAPITokenRepository() (apiTokenUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for api token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return apiTokenRepository.NewPostgreSQLTokenRepository(db), nil
	case "mysql":
		return apiTokenRepository.NewMySQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAPITokenUseCase creates the api token use case, wrapped with metrics when enabled.
func (c *Container) initAPITokenUseCase() (apiTokenUseCase.TokenUseCase, error) {
	tokenRepo, err := c.APITokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get api token repository for api token use case: %w", err)
	}

	identity, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for api token use case: %w", err)
	}

	baseUseCase := apiTokenUseCase.NewTokenUseCase(
		tokenRepo,
		identity,
		c.CredentialGenerator(),
		c.config.TokenTouchTimeout,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for api token use case: %w", err)
		}
		return apiTokenUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenHandler creates the api token HTTP handler.
func (c *Container) initTokenHandler() (*apiTokenHTTP.TokenHandler, error) {
	tokenUseCase, err := c.APITokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get api token use case for token handler: %w", err)
	}
	return apiTokenHTTP.NewTokenHandler(tokenUseCase, c.Logger()), nil
}
