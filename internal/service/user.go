package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wali-jeweller/storefront/internal/auth"
	"github.com/wali-jeweller/storefront/internal/domain"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
)

// UserService implements back-office authentication.
type UserService struct {
	repo   domain.UserRepository
	tokens *auth.JWTManager
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo domain.UserRepository, tokens *auth.JWTManager, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// LoginResult holds the session token and the authenticated user.
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login verifies the credentials and issues a session token. Unknown emails
// and wrong passwords produce the same error so the endpoint does not leak
// which accounts exist.
func (s *UserService) Login(ctx context.Context, input *domain.LoginInput) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		s.logger.WarnContext(ctx, "failed login attempt",
			slog.String("user_id", user.ID),
		)
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
	)

	return &LoginResult{Token: token, User: user}, nil
}

// GetUser retrieves a user by ID, for the session-info endpoint.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}
