package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/homelists/homelists/internal/auth"
	"github.com/homelists/homelists/internal/model"
	"github.com/homelists/homelists/internal/store"
)

// ErrInvalidCredentials is returned for both unknown email and wrong password
// so a caller cannot probe which of the two failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles account creation and credential checks.
type AuthService struct {
	store store.Store
}

func NewAuthService(s store.Store) *AuthService { return &AuthService{store: s} }

// SignUp registers a new account. Email addresses are unique after
// normalization (trimmed, lowercased).
func (s *AuthService) SignUp(ctx context.Context, email, password string, displayName *string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", model.ErrValidation)
	}

	if _, err := s.store.Users().GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already in use", model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &model.User{Email: email, DisplayName: displayName, PasswordHash: hash}
	return s.store.Users().Create(ctx, u)
}

// SignIn verifies credentials and returns the matching user.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Me returns the account for an authenticated user ID.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	return s.store.Users().GetByID(ctx, userID)
}
