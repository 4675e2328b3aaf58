package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"complyhub/internal/config"
	"complyhub/internal/domain"
	"complyhub/internal/service"
	"complyhub/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-at-least-32-characters",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "complyhub-test",
	}
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	startupID := uuid.New()
	return &domain.User{
		ID:           uuid.New(),
		Email:        "founder@acme.example",
		PasswordHash: string(hash),
		FullName:     "Founder",
		Role:         domain.RoleStartup,
		StartupID:    &startupID,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := testUser(t, "correct-horse")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleStartup, claims.Role)
	assert.NotNil(t, claims.StartupID)
	assert.Equal(t, *user.StartupID, *claims.StartupID)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := testUser(t, "correct-horse")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "wrong-horse",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByEmail", mock.Anything, "nobody@acme.example").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@acme.example",
		Password: "irrelevant",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := testUser(t, "correct-horse")
	user.IsActive = false
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestValidateToken_RejectsRefreshTokenAsAccess(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := testUser(t, "correct-horse")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshToken_IssuesNewPair(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := testUser(t, "correct-horse")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := svc.ValidateToken(refreshed.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := testUser(t, "correct-horse")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateToken_RejectsTamperedSecret(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.Secret = "a-completely-different-secret-key"
	otherSvc := service.NewAuthService(userRepo, otherCfg)

	user := testUser(t, "correct-horse")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := otherSvc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}
