package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"complyhub/internal/domain"
	"complyhub/internal/service"
	"complyhub/mocks"
)

func TestCreateUser_StartupRoleRequiresStartupID(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserService(userRepo)

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "founder@acme.example",
		Password: "correct-horse",
		FullName: "Founder",
		Role:     domain.RoleStartup,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_VerifierRoleRejectsStartupID(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserService(userRepo)

	startupID := uuid.New()
	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:     "ca@firm.example",
		Password:  "correct-horse",
		FullName:  "Verifier",
		Role:      domain.RoleCA,
		StartupID: &startupID,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateUser_UnknownRole(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserService(userRepo)

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "x@acme.example",
		Password: "correct-horse",
		FullName: "X",
		Role:     "superuser",
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserService(userRepo)

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	startupID := uuid.New()
	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:     "founder@acme.example",
		Password:  "correct-horse",
		FullName:  "Founder",
		Role:      domain.RoleStartup,
		StartupID: &startupID,
	})

	assert.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
}

func TestUpdateUser_RejectsUnknownRole(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserService(userRepo)

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:   userID,
		Role: domain.RoleCA,
	}, nil)

	bad := domain.UserRole("root")
	_, err := svc.Update(context.Background(), userID, service.UpdateUserInput{Role: &bad})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateUser_DeactivatesUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserService(userRepo)

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:       userID,
		Role:     domain.RoleCA,
		IsActive: true,
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return !u.IsActive
	})).Return(nil)

	inactive := false
	user, err := svc.Update(context.Background(), userID, service.UpdateUserInput{IsActive: &inactive})

	assert.NoError(t, err)
	assert.False(t, user.IsActive)
	userRepo.AssertExpectations(t)
}
