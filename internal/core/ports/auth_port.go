package ports

import "github.com/sewamoto/motor_rental_service/internal/core/domain"

// TokenService issues and verifies the bearer credential carried in the
// Authorization header.
type TokenService interface {
	IssueToken(user *domain.User) (string, error)
	VerifyToken(token string) (*domain.TokenPayload, error)
}
