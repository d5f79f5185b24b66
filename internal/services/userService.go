package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/arzan03/storefront/internal/models"
	"github.com/arzan03/storefront/internal/store"
)

// UserService reads and updates accounts.
type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// List returns every non-admin account.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRole(ctx, models.RoleUser)
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	objID, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, objID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrNotFound, "User not found")
	}
	return user, err
}

// UpdateProfile sets name and email. The email must stay unique.
func (s *UserService) UpdateProfile(ctx context.Context, id, name, email string) (*models.User, error) {
	objID, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, objID, name, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, newError(ErrNotFound, "User not found")
	case errors.Is(err, store.ErrDuplicate):
		return nil, newError(ErrConflict, "User with this email already exists")
	case err != nil:
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// UpdatePassword replaces the password hash once oldPassword verifies.
func (s *UserService) UpdatePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return newError(ErrInvalidInput, "Missing old or new password")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !VerifyPassword(oldPassword, user.Password) {
		return newError(ErrInvalidInput, "Old password is incorrect")
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
