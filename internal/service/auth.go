package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bexshelf/bexshelf-server/internal/auth"
	"github.com/bexshelf/bexshelf-server/internal/domain"
	domainerrors "github.com/bexshelf/bexshelf-server/internal/errors"
	"github.com/bexshelf/bexshelf-server/internal/id"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// AuthService handles registration, login, and token verification.
type AuthService struct {
	store        *store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store *store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterRequest contains new account data.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the access token and the authenticated user.
type AuthResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates a new user account and logs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate(id.User)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := domain.User{
		ID:           userID,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: passwordHash,
	}

	// The uniqueness check and the insert run in one locked cycle so two
	// concurrent registrations can't both claim the same email.
	err = s.store.Users.Transact(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if strings.EqualFold(users[i].Email, email) {
				return nil, domainerrors.AlreadyExists("email already in use")
			}
		}
		user.CreatedAt = time.Now()
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokenService.GenerateAccessToken(&user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("User registered", "user_id", userID, "email", email)

	return &AuthResponse{User: user.Public(), Token: token}, nil
}

// Login authenticates a user and issues an access token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.store.Users.Find(ctx, func(u *domain.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// Don't leak whether the email exists.
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)

	return &AuthResponse{User: user.Public(), Token: token}, nil
}

// Logout ends a session. Tokens are stateless, so this only exists to give
// clients a consistent endpoint and an audit log line.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	s.logger.Info("User logged out", "user_id", userID)
}

// VerifyAccessToken validates a token and returns the associated user.
// Used by the authentication middleware.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token")
	}

	user, err := s.store.Users.Find(ctx, func(u *domain.User) bool {
		return u.ID == claims.UserID
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}
