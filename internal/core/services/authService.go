package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo ports.UserRepository
	logger   ports.LoggerPort
	validate *validator.Validate
}

func NewAuthService(
	userRepo ports.UserRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
		validate: validate,
	}
}

func (s *AuthService) Register(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if user.Role == "" {
		user.Role = domain.AppUser
	}
	if err := s.validate.Struct(user); err != nil {
		s.logger.Error("User validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("validation error: password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	createdUser, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("Failed to create user", map[string]interface{}{
			"error":    err.Error(),
			"username": user.Username,
		})
		return nil, err
	}

	s.logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  createdUser.ID,
		"username": createdUser.Username,
	})

	return createdUser, nil
}

// Login verifies the password with a constant-time bcrypt comparison. An
// unknown username and a wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ports.ErrInvalidCredentials
		}
		s.logger.Error("Failed to look up user", map[string]interface{}{
			"error":    err.Error(),
			"username": username,
		})
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ports.ErrInvalidCredentials
	}

	s.logger.Info("Login successful", map[string]interface{}{
		"user_id": user.ID,
	})

	return user, nil
}
