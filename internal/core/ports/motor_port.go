package ports

import (
	"context"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
)

type MotorRepository interface {
	CreateMotor(ctx context.Context, motor *domain.Motor) (*domain.Motor, error)
	GetMotorByID(ctx context.Context, motorID int) (*domain.Motor, error)
	ListMotors(ctx context.Context, query *domain.MotorQuery) ([]*domain.Motor, int64, error)
	UpdateMotor(ctx context.Context, motorID int, update *domain.MotorUpdate) (*domain.Motor, error)
	DeleteMotor(ctx context.Context, motorID int) error
}
