package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/euRezerv/api-sub000/internal/domain"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service authenticates users against the store.
type Service struct {
	Store domain.Store
}

// Login finds the user by email and verifies the password.
func (s *Service) Login(ctx context.Context, in LoginInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	u, err := s.Store.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidEmail
		}
		return nil, apperror.Internal(err)
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return u, nil
}

// VerifyUser returns the session's user if the account still exists.
func (s *Service) VerifyUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	u, err := s.Store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, apperror.Internal(err)
	}
	return u, nil
}
