package services

import (
	"context"

	"github.com/myblog/backend/internal/models"
)

// userService exposes user lookups behind the admin gate
type userService struct {
	userRepo      UserRepository
	authenticator Authenticator
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, authenticator Authenticator) *userService {
	return &userService{
		userRepo:      userRepo,
		authenticator: authenticator,
	}
}

// GetUser retrieves a user by id. The caller is resolved from its own bearer
// token and must carry the admin role.
func (s *userService) GetUser(ctx context.Context, token string, userID int) (*models.User, error) {
	caller, err := s.authenticator.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() {
		return nil, models.ErrForbidden
	}

	return s.userRepo.GetByID(ctx, userID)
}

// Me returns the caller's own user record
func (s *userService) Me(ctx context.Context, token string) (*models.User, error) {
	return s.authenticator.CurrentUser(ctx, token)
}
