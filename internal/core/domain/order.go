package domain

import (
	"time"

	"github.com/google/uuid"
)

const OrderStatusPending = "pending"

type Order struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	// Username is only populated by the admin listing join.
	Username string `json:"username,omitempty"`

	TanggalPeminjaman time.Time `json:"tanggal_peminjaman"`
	JamPeminjaman     time.Time `json:"jam_peminjaman"`
	AlamatPengantaran string    `json:"alamat_pengantaran"`

	TanggalPengembalian time.Time `json:"tanggal_pengembalian"`
	JamPengembalian     time.Time `json:"jam_pengembalian"`
	AlamatPengembalian  string    `json:"alamat_pengembalian"`

	PilihCabang string `json:"pilih_cabang"`
	PilihMotor  string `json:"pilih_motor"`
	MotorPrice  string `json:"motor_price"`
	Status      string `json:"status"`

	TanggalBooking time.Time `json:"tanggal_booking"`
	WaktuBooking   time.Time `json:"waktu_booking"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BookingRef derives the human-readable booking reference shown in listings
// from the first six characters of the row id.
func (o *Order) BookingRef() string {
	id := o.ID.String()
	if len(id) > 6 {
		id = id[:6]
	}
	return "BWK" + id
}
