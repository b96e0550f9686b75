package services

import (
	"context"
	"time"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

// fakeCache is an in-memory ports.CachePort.
type fakeCache struct {
	entries map[string][]byte
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(key string) ([]byte, error) {
	value, ok := c.entries[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return value, nil
}

func (c *fakeCache) Set(key string, value []byte, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(key string) error {
	delete(c.entries, key)
	c.deletes = append(c.deletes, key)
	return nil
}

// fakeUserRepo keeps users in a map keyed by id.
type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*domain.User{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, ports.ErrConflict
		}
	}
	stored := *user
	stored.CreatedAt = time.Now()
	r.users[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, userID uuid.UUID) (*domain.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) (*domain.User, error) {
	stored, ok := r.users[user.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	stored.FullName = user.FullName
	stored.Email = user.Email
	stored.Phone = user.Phone
	copied := *stored
	return &copied, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, userID uuid.UUID) error {
	if _, ok := r.users[userID]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) ListUsers(_ context.Context, limit int) ([]*domain.User, error) {
	var users []*domain.User
	for _, user := range r.users {
		if len(users) == limit {
			break
		}
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

// fakeMotorRepo records the last query it saw so tests can assert on the
// normalized pagination.
type fakeMotorRepo struct {
	motors    map[int]*domain.Motor
	nextID    int
	lastQuery *domain.MotorQuery
}

func newFakeMotorRepo() *fakeMotorRepo {
	return &fakeMotorRepo{motors: map[int]*domain.Motor{}, nextID: 1}
}

func (r *fakeMotorRepo) CreateMotor(_ context.Context, motor *domain.Motor) (*domain.Motor, error) {
	stored := *motor
	stored.MotorID = r.nextID
	r.nextID++
	r.motors[stored.MotorID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeMotorRepo) GetMotorByID(_ context.Context, motorID int) (*domain.Motor, error) {
	motor, ok := r.motors[motorID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copied := *motor
	return &copied, nil
}

func (r *fakeMotorRepo) ListMotors(_ context.Context, query *domain.MotorQuery) ([]*domain.Motor, int64, error) {
	copied := *query
	r.lastQuery = &copied

	var motors []*domain.Motor
	for _, motor := range r.motors {
		if query.MotorType != "" && motor.MotorType != query.MotorType {
			continue
		}
		if query.AvailableOnly && (motor.Available == nil || !*motor.Available) {
			continue
		}
		m := *motor
		motors = append(motors, &m)
	}
	total := int64(len(motors))
	if len(motors) > query.Limit {
		motors = motors[:query.Limit]
	}
	return motors, total, nil
}

func (r *fakeMotorRepo) UpdateMotor(_ context.Context, motorID int, update *domain.MotorUpdate) (*domain.Motor, error) {
	motor, ok := r.motors[motorID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if update.MotorSlug != nil {
		motor.MotorSlug = *update.MotorSlug
	}
	if update.MotorName != nil {
		motor.MotorName = *update.MotorName
	}
	if update.MotorType != nil {
		motor.MotorType = *update.MotorType
	}
	if update.PricePerDay != nil {
		motor.PricePerDay = *update.PricePerDay
	}
	if update.Description != nil {
		motor.Description = update.Description
	}
	if update.ImageURL != nil {
		motor.ImageURL = update.ImageURL
	}
	if update.Available != nil {
		motor.Available = update.Available
	}
	if update.Branch != nil {
		motor.Branch = update.Branch
	}
	copied := *motor
	return &copied, nil
}

func (r *fakeMotorRepo) DeleteMotor(_ context.Context, motorID int) error {
	if _, ok := r.motors[motorID]; !ok {
		return ports.ErrNotFound
	}
	delete(r.motors, motorID)
	return nil
}
