package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sewamoto/motor_rental_service/internal/core/domain"
	"github.com/sewamoto/motor_rental_service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const orderColumns = `id, user_id, tanggal_peminjaman, jam_peminjaman, alamat_pengantaran,
		tanggal_pengembalian, jam_pengembalian, alamat_pengembalian,
		pilih_cabang, pilih_motor, motor_price, status,
		tanggal_booking, waktu_booking, created_at, updated_at`

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{
		db,
	}
}

func scanOrder(row interface {
	Scan(dest ...interface{}) error
}, order *domain.Order) error {
	return row.Scan(
		&order.ID,
		&order.UserID,
		&order.TanggalPeminjaman,
		&order.JamPeminjaman,
		&order.AlamatPengantaran,
		&order.TanggalPengembalian,
		&order.JamPengembalian,
		&order.AlamatPengembalian,
		&order.PilihCabang,
		&order.PilihMotor,
		&order.MotorPrice,
		&order.Status,
		&order.TanggalBooking,
		&order.WaktuBooking,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
}

// CreateOrder inserts the booking. The booking date/time stamps come from
// the database, not the caller.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `INSERT INTO orders (
			id, user_id,
			tanggal_peminjaman, jam_peminjaman, alamat_pengantaran,
			tanggal_pengembalian, jam_pengembalian, alamat_pengembalian,
			pilih_cabang, pilih_motor, motor_price, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING tanggal_booking, waktu_booking, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		order.ID,
		order.UserID,
		order.TanggalPeminjaman,
		order.JamPeminjaman,
		order.AlamatPengantaran,
		order.TanggalPengembalian,
		order.JamPengembalian,
		order.AlamatPengembalian,
		order.PilihCabang,
		order.PilihMotor,
		order.MotorPrice,
		order.Status,
	).Scan(
		&order.TanggalBooking,
		&order.WaktuBooking,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23502":
				return nil, fmt.Errorf("required field is missing")
			case "23503":
				return nil, fmt.Errorf("user does not exist")
			default:
				return nil, err
			}
		}
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order := &domain.Order{}
	err := scanOrder(r.db.QueryRowContext(ctx, query, orderID), order)

	if err == sql.ErrNoRows {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1
		ORDER BY tanggal_booking DESC, waktu_booking DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order

	for rows.Next() {
		order := &domain.Order{}
		if err := scanOrder(rows, order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT o.id, o.user_id, u.username,
			o.tanggal_peminjaman, o.jam_peminjaman, o.alamat_pengantaran,
			o.tanggal_pengembalian, o.jam_pengembalian, o.alamat_pengembalian,
			o.pilih_cabang, o.pilih_motor, o.motor_price, o.status,
			o.tanggal_booking, o.waktu_booking, o.created_at, o.updated_at
		FROM orders o
		JOIN users u ON o.user_id = u.id
		ORDER BY o.tanggal_booking DESC, o.waktu_booking DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order

	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Username,
			&order.TanggalPeminjaman,
			&order.JamPeminjaman,
			&order.AlamatPengantaran,
			&order.TanggalPengembalian,
			&order.JamPengembalian,
			&order.AlamatPengembalian,
			&order.PilihCabang,
			&order.PilihMotor,
			&order.MotorPrice,
			&order.Status,
			&order.TanggalBooking,
			&order.WaktuBooking,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, orderID)
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

func (r *OrderRepository) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	query := `DELETE FROM orders WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, orderID)
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
