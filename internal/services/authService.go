package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arzan03/storefront/internal/models"
	"github.com/arzan03/storefront/internal/store"
)

// Session is the result of a successful register or login.
type Session struct {
	User      models.TokenUser
	Token     string
	ExpiresAt time.Time
}

// AuthService registers and logs in users.
type AuthService struct {
	users  store.UserStore
	tokens *TokenService
}

func NewAuthService(users store.UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates an account. The first account ever created is an admin.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, newError(ErrConflict, "User with this email already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	role := models.RoleUser
	if count == 0 {
		role = models.RoleAdmin
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, newError(ErrConflict, "User with this email already exists")
		}
		return nil, err
	}

	return s.session(user)
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, newError(ErrInvalidInput, "Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrInvalidCredentials, "Invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if !VerifyPassword(password, user.Password) {
		return nil, newError(ErrInvalidCredentials, "Invalid credentials")
	}

	return s.session(*user)
}

func (s *AuthService) session(user models.User) (*Session, error) {
	tokenUser := user.TokenUser()
	token, expiresAt, err := s.tokens.Issue(tokenUser)
	if err != nil {
		return nil, err
	}
	return &Session{User: tokenUser, Token: token, ExpiresAt: expiresAt}, nil
}
