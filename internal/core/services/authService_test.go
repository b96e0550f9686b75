package services

import (
	"context"
	"testing"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(repo *fakeUserRepo) *AuthService {
	return NewAuthService(repo, nopLogger{}, validator.New())
}

func validUser() *domain.User {
	return &domain.User{
		FullName: "Budi Santoso",
		Username: "budisantoso",
		Email:    "budi@example.com",
		Phone:    "081234567890",
	}
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	repo := newFakeUserRepo()
	service := newAuthService(repo)

	created, err := service.Register(context.Background(), validUser(), "secret123")
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, domain.AppUser, created.Role)
	require.NotEqual(t, "secret123", created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	service := newAuthService(newFakeUserRepo())

	_, err := service.Register(context.Background(), validUser(), "abc")
	require.Error(t, err)
	require.Contains(t, err.Error(), "password")
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	service := newAuthService(repo)

	_, err := service.Register(context.Background(), validUser(), "secret123")
	require.NoError(t, err)

	again := validUser()
	again.Email = "other@example.com"
	_, err = service.Register(context.Background(), again, "secret123")
	require.ErrorIs(t, err, ports.ErrConflict)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	service := newAuthService(repo)

	registered, err := service.Register(context.Background(), validUser(), "secret123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"correct credentials", "budisantoso", "secret123", nil},
		{"wrong password", "budisantoso", "wrong", ports.ErrInvalidCredentials},
		{"unknown username", "nobody", "secret123", ports.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, registered.ID, user.ID)
		})
	}
}
