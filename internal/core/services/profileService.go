package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Users created through the profile facade never chose a password; they get
// this one hashed and must reset it through a real flow later.
const profileDefaultPassword = "password123"

const profileListLimit = 50

type ProfileService struct {
	userRepo ports.UserRepository
	logger   ports.LoggerPort
	validate *validator.Validate
}

func NewProfileService(
	userRepo ports.UserRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		logger:   logger,
		validate: validate,
	}
}

// parseUserID rejects the frontend's placeholder id and the empty string
// before attempting a UUID parse.
func parseUserID(userID string) (uuid.UUID, error) {
	if userID == "default-id" || userID == "" {
		return uuid.Nil, fmt.Errorf("%w: %q", ports.ErrInvalidID, userID)
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ports.ErrInvalidID, userID)
	}
	return id, nil
}

// UpsertProfile writes profile data onto the users table. An existing row is
// updated in place; a missing row is created with a derived username and a
// hashed default password.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID uuid.UUID, nama, email, noHP string) (*domain.User, error) {
	existing, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		s.logger.Error("Failed to look up user for profile upsert", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	if existing != nil {
		existing.FullName = nama
		existing.Email = email
		existing.Phone = noHP

		updated, err := s.userRepo.UpdateProfile(ctx, existing)
		if err != nil {
			s.logger.Error("Failed to update profile", map[string]interface{}{
				"error":   err.Error(),
				"user_id": userID,
			})
			return nil, err
		}

		s.logger.Info("Profile updated", map[string]interface{}{
			"user_id": userID,
		})
		return updated, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(profileDefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		FullName:     nama,
		Username:     strings.ReplaceAll(strings.ToLower(nama), " ", ""),
		Email:        email,
		Phone:        noHP,
		PasswordHash: string(hash),
		Role:         domain.AppUser,
	}

	if err := s.validate.Struct(user); err != nil {
		s.logger.Error("Profile validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("Failed to create user from profile", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	s.logger.Info("Profile created", map[string]interface{}{
		"user_id": created.ID,
	})

	return created, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get profile", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	return user, nil
}

// UpdateProfile merges the supplied fields over the stored row; nil fields
// keep their current values.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, nama, email, noHP *string) (*domain.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	current, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get profile for update", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	if nama != nil {
		current.FullName = *nama
	}
	if email != nil {
		current.Email = *email
	}
	if noHP != nil {
		current.Phone = *noHP
	}

	updated, err := s.userRepo.UpdateProfile(ctx, current)
	if err != nil {
		s.logger.Error("Failed to update profile", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	s.logger.Info("Profile updated", map[string]interface{}{
		"user_id": userID,
	})

	return updated, nil
}

func (s *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		s.logger.Error("Failed to delete profile", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return err
	}

	s.logger.Info("Profile deleted", map[string]interface{}{
		"user_id": userID,
	})

	return nil
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, profileListLimit)
	if err != nil {
		s.logger.Error("Failed to list profiles", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	return users, nil
}
