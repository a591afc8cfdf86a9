package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/myblog/backend/internal/auth"
	"github.com/myblog/backend/internal/models"
	"go.uber.org/zap"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// If no user with such ID exists, models.ErrUserNotFound is returned
	// together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method GetByCredentials retrieves a user whose username and password
	// both match.
	//
	// If no row matches, models.ErrInvalidCredentials is returned together
	// with "nil" value.
	GetByCredentials(ctx context.Context, username, password string) (*models.User, error)
}

// TokenResponse is the login response body
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// authService implements login and bearer token resolution
type authService struct {
	userRepo UserRepository
	codec    auth.TokenCodec
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, codec auth.TokenCodec, logger *zap.Logger) *authService {
	return &authService{
		userRepo: userRepo,
		codec:    codec,
		logger:   logger,
	}
}

// Login authenticates a user by username and password and issues a bearer token
func (s *authService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		s.logger.Error("failed to issue token", zap.Error(err), zap.Int("userId", user.ID))
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// UserByID retrieves a user record by its numeric id, bypassing the token
// codec
func (s *authService) UserByID(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// CurrentUser resolves a bearer token to the user it identifies.
//
// A token the codec cannot parse is ErrUnauthenticated; a token that parses
// to an id with no user row is ErrUserNotFound.
func (s *authService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.codec.Subject(token)
	if err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}
