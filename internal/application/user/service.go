package user

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/euRezerv/api-sub000/internal/domain"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

var (
	ErrFirstNameRequired      = apperror.Validation("First name is required and must be a non-empty string")
	ErrLastNameRequired       = apperror.Validation("Last name is required and must be a non-empty string")
	ErrInvalidName            = apperror.Validation("Name contains invalid characters (only letters, spaces, hyphens, and apostrophes allowed)")
	ErrInvalidEmail           = apperror.Validation("Invalid email format")
	ErrInvalidPassword        = apperror.Validation("Invalid password format")
	ErrEmailAlreadyRegistered = apperror.Uniqueness("Email already registered")
	ErrUserNotFound           = apperror.NotFound("User not found")
)

// Service holds user account operations.
type Service struct {
	Store domain.Store
}

type CreateUserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// CreateUser registers an account. Names are title-cased, the email lower-cased.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	first := strings.TrimSpace(in.FirstName)
	if first == "" {
		return nil, ErrFirstNameRequired
	}
	last := strings.TrimSpace(in.LastName)
	if last == "" {
		return nil, ErrLastNameRequired
	}
	if !validation.IsValidName(first) || !validation.IsValidName(last) {
		return nil, ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrInvalidPassword
	}

	if _, err := s.Store.Users().FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u := &domain.User{
		FirstName:    titleCaseAndNormalize(first),
		LastName:     titleCaseAndNormalize(last),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Store.Users().Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if _, findErr := s.Store.Users().FindByEmail(ctx, email); findErr == nil {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, apperror.Internal(err)
	}
	return u, nil
}

// ViewUser returns an active user by id.
func (s *Service) ViewUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.Store.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperror.Internal(err)
	}
	return u, nil
}

func titleCaseAndNormalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	var b strings.Builder
	capitalize := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !capitalize {
				b.WriteRune(' ')
				capitalize = true
			}
			continue
		}
		if capitalize {
			b.WriteRune(unicode.ToUpper(r))
			capitalize = false
		} else {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
