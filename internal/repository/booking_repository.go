package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lemans/hotel-bookings/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUserEmail(ctx context.Context, email string) ([]domain.Booking, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

// Bookings are always read with their user, room and dish joined in so the
// response shaping never needs extra round trips.
const bookingSelect = `
	SELECT b.id, b.reference, b.status, b.user_id, b.room_id, b.dish_id,
	       b.check_in_date, b.check_out_date, b.num_persons, b.total_cost,
	       b.created_at, b.updated_at,
	       u.name, u.email,
	       r.room_type, r.price, r.available,
	       d.cuisine_name, d.price_per_person
	FROM bookings b
	LEFT JOIN users u ON u.id = b.user_id
	LEFT JOIN rooms r ON r.id = b.room_id
	LEFT JOIN dishes d ON d.id = b.dish_id`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b         domain.Booking
		userName  *string
		userEmail *string
		roomType  *string
		roomPrice *float64
		roomAvail *bool
		cuisine   *string
		dishPrice *float64
	)

	err := row.Scan(
		&b.ID, &b.Reference, &b.Status, &b.UserID, &b.RoomID, &b.DishID,
		&b.CheckInDate, &b.CheckOutDate, &b.NumPersons, &b.TotalCost,
		&b.CreatedAt, &b.UpdatedAt,
		&userName, &userEmail,
		&roomType, &roomPrice, &roomAvail,
		&cuisine, &dishPrice,
	)
	if err != nil {
		return nil, err
	}

	if b.UserID != nil && userName != nil && userEmail != nil {
		b.User = &domain.User{ID: *b.UserID, Name: *userName, Email: *userEmail}
	}
	if b.RoomID != nil && roomType != nil && roomPrice != nil {
		room := domain.Room{ID: *b.RoomID, RoomType: *roomType, Price: *roomPrice}
		if roomAvail != nil {
			room.Available = *roomAvail
		}
		b.Room = &room
	}
	if b.DishID != nil && cuisine != nil && dishPrice != nil {
		b.Dish = &domain.Dish{ID: *b.DishID, CuisineName: *cuisine, PricePerPerson: *dishPrice}
	}

	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	const q = `
		INSERT INTO bookings (
			reference, status, user_id, room_id, dish_id,
			check_in_date, check_out_date, num_persons, total_cost
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q,
		b.Reference, b.Status, b.UserID, b.RoomID, b.DishID,
		b.CheckInDate, b.CheckOutDate, b.NumPersons, b.TotalCost,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = bookingSelect + ` WHERE b.id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return b, err
}

func (r *bookingRepository) ListByUserEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	const q = bookingSelect + `
		WHERE lower(u.email) = lower($1)
		ORDER BY b.created_at DESC, b.id DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = bookingSelect + `
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $1 OFFSET $2`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = bookingSelect + `
		WHERE b.status = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2 OFFSET $3`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	const q = `UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
