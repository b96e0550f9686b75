package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"

	"github.com/lib/pq"
)

const motorColumns = `motor_id, motor_slug, motor_name, motor_type, price_per_day, description, image_url, available, branch`

type MotorRepository struct {
	db *sql.DB
}

func NewMotorRepository(db *sql.DB) *MotorRepository {
	return &MotorRepository{
		db,
	}
}

func scanMotor(row interface {
	Scan(dest ...interface{}) error
}, motor *domain.Motor) error {
	return row.Scan(
		&motor.MotorID,
		&motor.MotorSlug,
		&motor.MotorName,
		&motor.MotorType,
		&motor.PricePerDay,
		&motor.Description,
		&motor.ImageURL,
		&motor.Available,
		&motor.Branch,
	)
}

func (r *MotorRepository) CreateMotor(ctx context.Context, motor *domain.Motor) (*domain.Motor, error) {
	query := `INSERT INTO motors (motor_slug, motor_name, motor_type, price_per_day, description, image_url, available, branch)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + motorColumns

	row := r.db.QueryRowContext(ctx, query,
		motor.MotorSlug,
		motor.MotorName,
		motor.MotorType,
		motor.PricePerDay,
		motor.Description,
		motor.ImageURL,
		motor.Available,
		motor.Branch,
	)

	if err := scanMotor(row, motor); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23502" {
			return nil, fmt.Errorf("required field is missing")
		}
		return nil, err
	}

	return motor, nil
}

func (r *MotorRepository) GetMotorByID(ctx context.Context, motorID int) (*domain.Motor, error) {
	query := `SELECT ` + motorColumns + ` FROM motors WHERE motor_id = $1`

	motor := &domain.Motor{}
	err := scanMotor(r.db.QueryRowContext(ctx, query, motorID), motor)

	if err == sql.ErrNoRows {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return motor, nil
}

// ListMotors runs the count and the page query with the same predicate.
// The two statements are not wrapped in a transaction; total and items may
// drift slightly under concurrent writes.
func (r *MotorRepository) ListMotors(ctx context.Context, query *domain.MotorQuery) ([]*domain.Motor, int64, error) {
	var conds []string
	var args []interface{}

	if query.MotorType != "" {
		args = append(args, query.MotorType)
		conds = append(conds, fmt.Sprintf("motor_type = $%d", len(args)))
	}
	if query.AvailableOnly {
		args = append(args, true)
		conds = append(conds, fmt.Sprintf("available = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM motors` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count motors: %w", err)
	}

	offset := (query.Page - 1) * query.Limit
	pageQuery := fmt.Sprintf(`SELECT %s FROM motors%s ORDER BY motor_id ASC LIMIT $%d OFFSET $%d`,
		motorColumns, where, len(args)+1, len(args)+2)
	args = append(args, query.Limit, offset)

	rows, err := r.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var motors []*domain.Motor

	for rows.Next() {
		motor := &domain.Motor{}
		if err := scanMotor(rows, motor); err != nil {
			return nil, 0, err
		}
		motors = append(motors, motor)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return motors, total, nil
}

// UpdateMotor applies only the supplied fields. Assignments are added in a
// fixed column order so the generated statement is stable.
func (r *MotorRepository) UpdateMotor(ctx context.Context, motorID int, update *domain.MotorUpdate) (*domain.Motor, error) {
	var set setClause

	if update.MotorSlug != nil {
		set.Set("motor_slug", *update.MotorSlug)
	}
	if update.MotorName != nil {
		set.Set("motor_name", *update.MotorName)
	}
	if update.MotorType != nil {
		set.Set("motor_type", *update.MotorType)
	}
	if update.PricePerDay != nil {
		set.Set("price_per_day", *update.PricePerDay)
	}
	if update.Description != nil {
		set.Set("description", *update.Description)
	}
	if update.ImageURL != nil {
		set.Set("image_url", *update.ImageURL)
	}
	if update.Available != nil {
		set.Set("available", *update.Available)
	}
	if update.Branch != nil {
		set.Set("branch", *update.Branch)
	}

	if set.Empty() {
		return nil, ports.ErrEmptyUpdate
	}

	query := fmt.Sprintf(`UPDATE motors SET %s WHERE motor_id = $%d RETURNING %s`,
		set.Clause(), set.Next(), motorColumns)
	args := append(set.Args(), motorID)

	motor := &domain.Motor{}
	err := scanMotor(r.db.QueryRowContext(ctx, query, args...), motor)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ports.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23502" {
			return nil, fmt.Errorf("required field is missing")
		}
		return nil, fmt.Errorf("error updating motor: %w", err)
	}

	return motor, nil
}

func (r *MotorRepository) DeleteMotor(ctx context.Context, motorID int) error {
	query := `DELETE FROM motors WHERE motor_id = $1`

	result, err := r.db.ExecContext(ctx, query, motorID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ports.ErrNotFound
	}

	return nil
}
