package service

import (
	"context"

	"go-cms-app/internal/data"
)

// CredentialVerifier extends UserRepository with login and directory lookups.
type CredentialVerifier interface {
	UserRepository
	VerifyCredentials(ctx context.Context, identifier, password string) (*data.User, error)
	ListUsers(ctx context.Context) ([]data.Author, error)
}

// UserService handles login and user directory lookups.
type UserService struct {
	users CredentialVerifier
}

// NewUserService creates a new UserService.
func NewUserService(users CredentialVerifier) *UserService {
	return &UserService{users: users}
}

// Login verifies an identifier/password pair against the stored salted
// hashes. A wrong identifier and a wrong password both fail the same way.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*data.User, error) {
	user, err := s.users.VerifyCredentials(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

// GetUserByID retrieves a user by id.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*data.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// ListUsers returns the {name, username} directory used by the back office
// when an admin reassigns a page's author.
func (s *UserService) ListUsers(ctx context.Context) ([]data.Author, error) {
	return s.users.ListUsers(ctx)
}
