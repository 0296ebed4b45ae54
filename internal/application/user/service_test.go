package user

import (
	"context"
	"testing"

	"github.com/euRezerv/api-sub000/internal/infrastructure/database"
	"github.com/euRezerv/api-sub000/internal/infrastructure/repository"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupUser(t *testing.T) *Service {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return &Service{Store: repository.New(db)}
}

func validInput() CreateUserInput {
	return CreateUserInput{FirstName: "  ana  maria ", LastName: "o'neil", Email: "Ana@Example.com", Password: "secret12!"}
}

func TestCreateUser(t *testing.T) {
	svc := setupUser(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", u.FirstName)
	assert.Equal(t, "O'neil", u.LastName)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret12!")))

	_, err = svc.CreateUser(ctx, validInput())
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
	assert.True(t, apperror.IsKind(err, apperror.KindUniqueness))

	got, err := svc.ViewUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = svc.ViewUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := setupUser(t)
	tests := []struct {
		name   string
		mutate func(*CreateUserInput)
		want   error
	}{
		{"no first name", func(in *CreateUserInput) { in.FirstName = " " }, ErrFirstNameRequired},
		{"no last name", func(in *CreateUserInput) { in.LastName = "" }, ErrLastNameRequired},
		{"digits in name", func(in *CreateUserInput) { in.LastName = "R2D2" }, ErrInvalidName},
		{"bad email", func(in *CreateUserInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
		{"weak password", func(in *CreateUserInput) { in.Password = "short" }, ErrInvalidPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.CreateUser(context.Background(), in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
