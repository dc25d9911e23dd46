package service

import (
	"context"
	"fmt"

	"github.com/keygate/auth-service/internal/auth"
	"github.com/keygate/auth-service/internal/domain"
	"github.com/keygate/auth-service/internal/repository"
	apperrors "github.com/keygate/auth-service/pkg/util"
)

// UserService serves read-only views of registered users.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Me returns the caller attached to ctx by the auth middleware.
func (s *UserService) Me(ctx context.Context) (domain.PublicUser, error) {
	user, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return domain.PublicUser{}, apperrors.NewUnauthenticated("no token provided")
	}
	return user, nil
}

// List returns every user's safe view, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
