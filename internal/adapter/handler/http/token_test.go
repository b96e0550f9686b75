package http

import (
	"testing"
	"time"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyToken(t *testing.T) {
	service := NewJWTTokenService("test-secret", time.Hour, nopLogger{})

	user := &domain.User{ID: uuid.New(), Role: domain.Admin}
	token, err := service.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := service.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, payload.UserID)
	require.Equal(t, domain.Admin, payload.Role)
}

func TestVerifyTokenRejectsForgeriesAndGarbage(t *testing.T) {
	service := NewJWTTokenService("test-secret", time.Hour, nopLogger{})
	other := NewJWTTokenService("other-secret", time.Hour, nopLogger{})

	user := &domain.User{ID: uuid.New(), Role: domain.AppUser}
	forged, err := other.IssueToken(user)
	require.NoError(t, err)

	expiredService := NewJWTTokenService("test-secret", -time.Minute, nopLogger{})
	expired, err := expiredService.IssueToken(user)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", forged},
		{"expired", expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			require.Error(t, err)
		})
	}
}

func TestVerifyTokenRejectsBadClaims(t *testing.T) {
	secret := []byte("test-secret")
	service := NewJWTTokenService(string(secret), time.Hour, nopLogger{})

	sign := func(claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		require.NoError(t, err)
		return token
	}

	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing user_id", jwt.MapClaims{"role": "user", "exp": exp}},
		{"unparseable user_id", jwt.MapClaims{"user_id": "nope", "role": "user", "exp": exp}},
		{"missing role", jwt.MapClaims{"user_id": uuid.New().String(), "exp": exp}},
		{"unknown role", jwt.MapClaims{"user_id": uuid.New().String(), "role": "superuser", "exp": exp}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(sign(tt.claims))
			require.Error(t, err)
		})
	}
}
