package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
)

const motorCacheTTL = 15 * time.Minute

type MotorService struct {
	motorRepo ports.MotorRepository
	logger    ports.LoggerPort
	validate  *validator.Validate
	cache     ports.CachePort
}

func NewMotorService(
	motorRepo ports.MotorRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *MotorService {
	return &MotorService{
		motorRepo: motorRepo,
		logger:    logger,
		validate:  validate,
		cache:     cache,
	}
}

func (s *MotorService) CreateMotor(ctx context.Context, motor *domain.Motor) (*domain.Motor, error) {
	if err := s.validate.Struct(motor); err != nil {
		s.logger.Error("Motor validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	// Availability defaults to true when the caller omits it.
	if motor.Available == nil {
		available := true
		motor.Available = &available
	}

	createdMotor, err := s.motorRepo.CreateMotor(ctx, motor)
	if err != nil {
		s.logger.Error("Failed to create motor", map[string]interface{}{
			"error":      err.Error(),
			"motor_slug": motor.MotorSlug,
		})
		return nil, err
	}

	s.logger.Info("Motor created successfully", map[string]interface{}{
		"motor_id":   createdMotor.MotorID,
		"motor_slug": createdMotor.MotorSlug,
	})

	return createdMotor, nil
}

func (s *MotorService) GetMotorByID(ctx context.Context, motorID int) (*domain.Motor, error) {
	cacheKey := fmt.Sprintf("motor:%d", motorID)
	cachedData, err := s.cache.Get(cacheKey)
	if err == nil {
		var cachedMotor domain.Motor
		if err := json.Unmarshal(cachedData, &cachedMotor); err == nil {
			s.logger.Debug("Motor found in cache", map[string]interface{}{
				"motor_id": motorID,
			})
			return &cachedMotor, nil
		}
	}

	motor, err := s.motorRepo.GetMotorByID(ctx, motorID)
	if err != nil {
		return nil, err
	}

	motorData, err := json.Marshal(motor)
	if err != nil {
		s.logger.Warn("Failed to marshal motor for cache", map[string]interface{}{
			"error":    err.Error(),
			"motor_id": motorID,
		})
	} else {
		if err := s.cache.Set(cacheKey, motorData, motorCacheTTL); err != nil {
			s.logger.Warn("Failed to cache motor", map[string]interface{}{
				"error":    err.Error(),
				"motor_id": motorID,
			})
		}
	}

	return motor, nil
}

// ListMotors normalizes pagination before hitting storage: page is floored
// at 1, limit defaults to 10 and is clamped to [1,100].
func (s *MotorService) ListMotors(ctx context.Context, query *domain.MotorQuery) ([]*domain.Motor, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	if query.Limit < 1 {
		query.Limit = 1
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	motors, total, err := s.motorRepo.ListMotors(ctx, query)
	if err != nil {
		s.logger.Error("Failed to list motors", map[string]interface{}{
			"error": err.Error(),
			"page":  query.Page,
			"limit": query.Limit,
		})
		return nil, 0, err
	}

	return motors, total, nil
}

func (s *MotorService) UpdateMotor(ctx context.Context, motorID int, update *domain.MotorUpdate) (*domain.Motor, error) {
	if update.Empty() {
		return nil, ports.ErrEmptyUpdate
	}

	updatedMotor, err := s.motorRepo.UpdateMotor(ctx, motorID, update)
	if err != nil {
		s.logger.Error("Failed to update motor", map[string]interface{}{
			"error":    err.Error(),
			"motor_id": motorID,
		})
		return nil, err
	}

	cacheKey := fmt.Sprintf("motor:%d", motorID)
	if err := s.cache.Delete(cacheKey); err != nil {
		s.logger.Warn("Failed to invalidate motor cache", map[string]interface{}{
			"error":    err.Error(),
			"motor_id": motorID,
		})
	}

	s.logger.Info("Motor updated successfully", map[string]interface{}{
		"motor_id": motorID,
	})

	return updatedMotor, nil
}

func (s *MotorService) DeleteMotor(ctx context.Context, motorID int) error {
	err := s.motorRepo.DeleteMotor(ctx, motorID)
	if err != nil {
		s.logger.Error("Failed to delete motor", map[string]interface{}{
			"error":    err.Error(),
			"motor_id": motorID,
		})
		return err
	}

	cacheKey := fmt.Sprintf("motor:%d", motorID)
	if err := s.cache.Delete(cacheKey); err != nil {
		s.logger.Warn("Failed to invalidate motor cache", map[string]interface{}{
			"error":    err.Error(),
			"motor_id": motorID,
		})
	}

	s.logger.Info("Motor deleted successfully", map[string]interface{}{
		"motor_id": motorID,
	})

	return nil
}
