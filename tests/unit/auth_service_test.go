package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"arsip-dokumen/internal/apperror"
	"arsip-dokumen/internal/config"
	"arsip-dokumen/internal/domain"
	"arsip-dokumen/internal/service"
	"arsip-dokumen/tests/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	input := domain.RegisterInput{
		Email:    "baru@example.com",
		FullName: "Pengguna Baru",
		Password: "rahasia-sekali",
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessions := new(mocks.SessionStore)
		svc := service.NewAuthService(userRepo, sessions, testConfig())

		userRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == input.Email && u.Role == domain.RoleUser && u.PasswordHash != input.Password
		})).Return(nil).Once()
		sessions.On("Save", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("uuid.UUID"), 7*24*time.Hour).Return(nil).Once()

		user, tokens, err := svc.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		userRepo.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("Email Taken", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessions := new(mocks.SessionStore)
		svc := service.NewAuthService(userRepo, sessions, testConfig())

		userRepo.On("ExistsByEmail", ctx, input.Email).Return(true, nil).Once()

		user, tokens, err := svc.Register(ctx, input)

		assert.Nil(t, user)
		assert.Nil(t, tokens)
		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "EMAIL_EXISTS", appErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	password := "rahasia-sekali"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &domain.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessions := new(mocks.SessionStore)
		svc := service.NewAuthService(userRepo, sessions, cfg)

		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		sessions.On("Save", ctx, mock.AnythingOfType("string"), user.ID, cfg.JWTRefreshExpiry).Return(nil).Once()

		loggedIn, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: password})

		assert.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)
		assert.NotEmpty(t, tokens.AccessToken)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessions := new(mocks.SessionStore)
		svc := service.NewAuthService(userRepo, sessions, cfg)

		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "salah"})

		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessions := new(mocks.SessionStore)
		svc := service.NewAuthService(userRepo, sessions, cfg)

		userRepo.On("GetByEmail", ctx, "tidak-ada@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "tidak-ada@example.com", Password: password})

		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	user := &domain.User{ID: uuid.New(), Email: "user@example.com", Role: domain.RoleUser}

	t.Run("Rotates Token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessions := new(mocks.SessionStore)
		svc := service.NewAuthService(userRepo, sessions, cfg)

		sessions.On("Lookup", ctx, mock.AnythingOfType("string")).Return(user.ID, nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		sessions.On("Revoke", ctx, mock.AnythingOfType("string")).Return(nil).Once()
		sessions.On("Save", ctx, mock.AnythingOfType("string"), user.ID, cfg.JWTRefreshExpiry).Return(nil).Once()

		tokens, err := svc.RefreshToken(ctx, "old-refresh-token")

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEqual(t, "old-refresh-token", tokens.RefreshToken)
		sessions.AssertExpectations(t)
	})

	t.Run("Unknown Token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessions := new(mocks.SessionStore)
		svc := service.NewAuthService(userRepo, sessions, cfg)

		sessions.On("Lookup", ctx, mock.AnythingOfType("string")).Return(uuid.Nil, nil).Once()

		tokens, err := svc.RefreshToken(ctx, "expired-token")

		assert.Nil(t, tokens)
		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_TOKEN", appErr.Code)
		sessions.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
	})

	t.Run("User Gone", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessions := new(mocks.SessionStore)
		svc := service.NewAuthService(userRepo, sessions, cfg)

		sessions.On("Lookup", ctx, mock.AnythingOfType("string")).Return(user.ID, nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(nil, nil).Once()

		tokens, err := svc.RefreshToken(ctx, "orphan-token")

		assert.Nil(t, tokens)
		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "USER_NOT_FOUND", appErr.Code)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	svc := service.NewAuthService(new(mocks.UserRepository), new(mocks.SessionStore), testConfig())

	claims, err := svc.ValidateAccessToken("not-a-jwt")

	assert.Nil(t, claims)
	appErr, ok := apperror.As(err)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_TOKEN", appErr.Code)
}
