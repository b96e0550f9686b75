package domain

import (
	"github.com/google/uuid"
)

type TokenPayload struct {
	UserID uuid.UUID
	Role   UserRole
}
