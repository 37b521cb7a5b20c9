package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wali-jeweller/storefront/internal/auth"
	"github.com/wali-jeweller/storefront/internal/domain"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newTestUserService(repo *mockUserRepository) (*UserService, *auth.JWTManager) {
	tokens := auth.NewJWTManager("test-secret", time.Hour)
	return NewUserService(repo, tokens, newTestLogger()), tokens
}

func TestLogin(t *testing.T) {
	repo := new(mockUserRepository)
	svc, tokens := newTestUserService(repo)

	hash, err := auth.HashPassword("correct horse battery")
	require.NoError(t, err)

	repo.On("GetByEmail", mock.Anything, "admin@wali.example").Return(&domain.User{
		ID:           "u-1",
		Email:        "admin@wali.example",
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	}, nil)

	result, err := svc.Login(context.Background(), &domain.LoginInput{
		Email:    "admin@wali.example",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", result.User.ID)

	claims, err := tokens.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc, _ := newTestUserService(repo)

	hash, err := auth.HashPassword("the real password")
	require.NoError(t, err)

	repo.On("GetByEmail", mock.Anything, "admin@wali.example").Return(&domain.User{
		ID:           "u-1",
		Email:        "admin@wali.example",
		PasswordHash: hash,
	}, nil)

	_, err = svc.Login(context.Background(), &domain.LoginInput{
		Email:    "admin@wali.example",
		Password: "a wrong guess",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	repo := new(mockUserRepository)
	svc, _ := newTestUserService(repo)

	hash, err := auth.HashPassword("the real password")
	require.NoError(t, err)

	repo.On("GetByEmail", mock.Anything, "nobody@wali.example").Return(nil, apperrors.ErrNotFound)
	repo.On("GetByEmail", mock.Anything, "admin@wali.example").Return(&domain.User{
		ID:           "u-1",
		PasswordHash: hash,
	}, nil)

	_, unknownErr := svc.Login(context.Background(), &domain.LoginInput{
		Email:    "nobody@wali.example",
		Password: "whatever",
	})
	_, wrongErr := svc.Login(context.Background(), &domain.LoginInput{
		Email:    "admin@wali.example",
		Password: "whatever",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}
