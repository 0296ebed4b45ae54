package auth

import "github.com/euRezerv/api-sub000/internal/pkg/apperror"

var (
	ErrEmailPasswordRequired = apperror.Validation("Email and password are required")
	ErrInvalidEmail          = apperror.Unauthorized("Invalid Email")
	ErrIncorrectPassword     = apperror.Unauthorized("Incorrect Password")
	ErrNotAuthenticated      = apperror.Unauthorized("Not authenticated")
)
