package services

import (
	"context"

	"github.com/pinkcart/api/internal/app/repositories"
	"github.com/pinkcart/api/internal/domain/user"
)

type UserService interface {
	// ListShoppers returns the registered USER accounts, newest first.
	ListShoppers(ctx context.Context) ([]*user.User, error)
}

type userService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) ListShoppers(ctx context.Context) ([]*user.User, error) {
	return s.users.ListByRole(ctx, user.RoleUser)
}
