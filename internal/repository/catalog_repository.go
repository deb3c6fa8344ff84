package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lemans/hotel-bookings/internal/domain"
)

// CatalogRepository serves the read-mostly reference data: rooms, dishes
// and offers. Writes are the admin inventory surface.
type CatalogRepository interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
	FindRoomByID(ctx context.Context, id int64) (*domain.Room, error)
	CreateRoom(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error)
	SetRoomAvailability(ctx context.Context, id int64, available bool) (*domain.Room, error)

	ListDishes(ctx context.Context) ([]domain.Dish, error)
	FindDishByID(ctx context.Context, id int64) (*domain.Dish, error)
	CreateDish(ctx context.Context, req *domain.CreateDishRequest) (*domain.Dish, error)

	ListOffers(ctx context.Context) ([]domain.Offer, error)
	CreateOffer(ctx context.Context, req *domain.CreateOfferRequest) (*domain.Offer, error)
}

type catalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{pool: pool}
}

const roomCols = `id, room_type, price, available, created_at`

func (r *catalogRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.RoomType, &rm.Price, &rm.Available, &rm.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

func (r *catalogRepository) FindRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var rm domain.Room
	err := r.pool.QueryRow(ctx, q, id).Scan(&rm.ID, &rm.RoomType, &rm.Price, &rm.Available, &rm.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &rm, err
}

func (r *catalogRepository) CreateRoom(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error) {
	const q = `
		INSERT INTO rooms (room_type, price, available)
		VALUES ($1, $2, $3)
		RETURNING ` + roomCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var rm domain.Room
	err := r.pool.QueryRow(ctx, q, req.RoomType, req.Price, req.Available).Scan(
		&rm.ID, &rm.RoomType, &rm.Price, &rm.Available, &rm.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *catalogRepository) SetRoomAvailability(ctx context.Context, id int64, available bool) (*domain.Room, error) {
	const q = `
		UPDATE rooms SET available = $2 WHERE id = $1
		RETURNING ` + roomCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var rm domain.Room
	err := r.pool.QueryRow(ctx, q, id, available).Scan(
		&rm.ID, &rm.RoomType, &rm.Price, &rm.Available, &rm.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &rm, err
}

const dishCols = `id, cuisine_name, price_per_person, created_at`

func (r *catalogRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	const q = `SELECT ` + dishCols + ` FROM dishes ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []domain.Dish
	for rows.Next() {
		var d domain.Dish
		if err := rows.Scan(&d.ID, &d.CuisineName, &d.PricePerPerson, &d.CreatedAt); err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

func (r *catalogRepository) FindDishByID(ctx context.Context, id int64) (*domain.Dish, error) {
	const q = `SELECT ` + dishCols + ` FROM dishes WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var d domain.Dish
	err := r.pool.QueryRow(ctx, q, id).Scan(&d.ID, &d.CuisineName, &d.PricePerPerson, &d.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &d, err
}

func (r *catalogRepository) CreateDish(ctx context.Context, req *domain.CreateDishRequest) (*domain.Dish, error) {
	const q = `
		INSERT INTO dishes (cuisine_name, price_per_person)
		VALUES ($1, $2)
		RETURNING ` + dishCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var d domain.Dish
	err := r.pool.QueryRow(ctx, q, req.CuisineName, req.PricePerPerson).Scan(
		&d.ID, &d.CuisineName, &d.PricePerPerson, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

const offerCols = `id, title, description, created_at`

func (r *catalogRepository) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	const q = `SELECT ` + offerCols + ` FROM offers ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		var o domain.Offer
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.CreatedAt); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

func (r *catalogRepository) CreateOffer(ctx context.Context, req *domain.CreateOfferRequest) (*domain.Offer, error) {
	const q = `
		INSERT INTO offers (title, description)
		VALUES ($1, $2)
		RETURNING ` + offerCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var o domain.Offer
	err := r.pool.QueryRow(ctx, q, req.Title, req.Description).Scan(
		&o.ID, &o.Title, &o.Description, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
