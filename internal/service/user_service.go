package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/repository"
)

// UserService exposes read operations over registered users.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns all registered users. Password hashes and access
// tokens are excluded from serialization by the model. An empty registry
// is reported as a not-found condition, matching the listing convention.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, models.NewEmptyResultError("No users found")
	}
	return users, nil
}
