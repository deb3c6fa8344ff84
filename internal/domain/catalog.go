package domain

import (
	"fmt"
	"strings"
	"time"
)

// Room is bookable inventory. Price is the nightly rate.
type Room struct {
	ID        int64     `json:"id"`
	RoomType  string    `json:"room_type"`
	Price     float64   `json:"price"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}

// Dish is a dining option priced per person per stay.
type Dish struct {
	ID             int64     `json:"id"`
	CuisineName    string    `json:"cuisine_name"`
	PricePerPerson float64   `json:"price_per_person"`
	CreatedAt      time.Time `json:"created_at"`
}

// Offer is promotional metadata with no lifecycle logic.
type Offer struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type RoomDTO struct {
	ID            int64   `json:"id"`
	RoomName      string  `json:"roomName"`
	PricePerNight float64 `json:"pricePerNight"`
	Available     bool    `json:"available"`
}

type DishDTO struct {
	ID             int64   `json:"id"`
	CuisineType    string  `json:"cuisineType"`
	PricePerPerson float64 `json:"pricePerPerson"`
}

type OfferDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *Room) ToDTO() RoomDTO {
	return RoomDTO{
		ID:            r.ID,
		RoomName:      r.RoomType,
		PricePerNight: r.Price,
		Available:     r.Available,
	}
}

func (d *Dish) ToDTO() DishDTO {
	return DishDTO{
		ID:             d.ID,
		CuisineType:    d.CuisineName,
		PricePerPerson: d.PricePerPerson,
	}
}

func (o *Offer) ToDTO() OfferDTO {
	return OfferDTO{
		Title:       o.Title,
		Description: o.Description,
	}
}

type CreateRoomRequest struct {
	RoomType  string  `json:"room_type"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

type CreateDishRequest struct {
	CuisineName    string  `json:"cuisine_name"`
	PricePerPerson float64 `json:"price_per_person"`
}

type CreateOfferRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *CreateRoomRequest) Validate() error {
	if strings.TrimSpace(r.RoomType) == "" {
		return fmt.Errorf("%w: room_type is required", ErrValidation)
	}
	if r.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}

func (r *CreateDishRequest) Validate() error {
	if strings.TrimSpace(r.CuisineName) == "" {
		return fmt.Errorf("%w: cuisine_name is required", ErrValidation)
	}
	if r.PricePerPerson < 0 {
		return fmt.Errorf("%w: price_per_person must not be negative", ErrValidation)
	}
	return nil
}

func (r *CreateOfferRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return nil
}
