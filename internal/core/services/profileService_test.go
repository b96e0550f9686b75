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

func newProfileService(repo *fakeUserRepo) *ProfileService {
	return NewProfileService(repo, nopLogger{}, validator.New())
}

func seedUser(t *testing.T, repo *fakeUserRepo) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:       uuid.New(),
		FullName: "Budi Santoso",
		Username: "budisantoso",
		Email:    "budi@example.com",
		Phone:    "081234567890",
		Role:     domain.AppUser,
	}
	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	return created
}

func TestParseUserID(t *testing.T) {
	valid := uuid.New()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", valid.String(), false},
		{"placeholder id", "default-id", true},
		{"empty", "", true},
		{"garbage", "not-a-uuid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseUserID(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ports.ErrInvalidID)
				return
			}
			require.NoError(t, err)
			require.Equal(t, valid, id)
		})
	}
}

func TestUpsertProfileInsertsMissingUser(t *testing.T) {
	repo := newFakeUserRepo()
	service := newProfileService(repo)

	userID := uuid.New()
	created, err := service.UpsertProfile(context.Background(), userID, "Budi Santoso", "budi@example.com", "081234567890")
	require.NoError(t, err)

	require.Equal(t, userID, created.ID)
	require.Equal(t, "budisantoso", created.Username)
	require.Equal(t, domain.AppUser, created.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
}

func TestUpsertProfileUpdatesExistingUser(t *testing.T) {
	repo := newFakeUserRepo()
	service := newProfileService(repo)
	user := seedUser(t, repo)

	updated, err := service.UpsertProfile(context.Background(), user.ID, "Budi S.", "new@example.com", "089999999999")
	require.NoError(t, err)

	require.Equal(t, user.ID, updated.ID)
	require.Equal(t, "Budi S.", updated.FullName)
	require.Equal(t, "new@example.com", updated.Email)
	// Username and role were set at registration and stay put.
	require.Equal(t, user.Username, repo.users[user.ID].Username)
}

func TestUpdateProfileMergesOnlySuppliedFields(t *testing.T) {
	repo := newFakeUserRepo()
	service := newProfileService(repo)
	user := seedUser(t, repo)

	email := "changed@example.com"
	updated, err := service.UpdateProfile(context.Background(), user.ID.String(), nil, &email, nil)
	require.NoError(t, err)

	require.Equal(t, email, updated.Email)
	require.Equal(t, user.FullName, updated.FullName)
	require.Equal(t, user.Phone, updated.Phone)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	service := newProfileService(newFakeUserRepo())

	nama := "Someone"
	_, err := service.UpdateProfile(context.Background(), uuid.New().String(), &nama, nil, nil)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestGetProfileRejectsPlaceholderID(t *testing.T) {
	service := newProfileService(newFakeUserRepo())

	_, err := service.GetProfile(context.Background(), "default-id")
	require.ErrorIs(t, err, ports.ErrInvalidID)
}

func TestDeleteProfile(t *testing.T) {
	repo := newFakeUserRepo()
	service := newProfileService(repo)
	user := seedUser(t, repo)

	require.NoError(t, service.DeleteProfile(context.Background(), user.ID.String()))
	require.ErrorIs(t, service.DeleteProfile(context.Background(), user.ID.String()), ports.ErrNotFound)
}

func TestGetUserByIDValidatesID(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo, nopLogger{})
	user := seedUser(t, repo)

	fetched, err := service.GetUserByID(context.Background(), user.ID.String())
	require.NoError(t, err)
	require.Equal(t, user.Username, fetched.Username)

	_, err = service.GetUserByID(context.Background(), "default-id")
	require.ErrorIs(t, err, ports.ErrInvalidID)

	_, err = service.GetUserByID(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ports.ErrNotFound)
}
