package domain

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus accepts status values case-insensitively, as they
// arrive from query parameters.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch status := BookingStatus(strings.ToUpper(strings.TrimSpace(s))); status {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return status, true
	default:
		return "", false
	}
}

// Booking references its user, room and dish by id; the store is
// authoritative. Room, Dish and User are hydrated by the repository for
// response shaping and may be nil.
type Booking struct {
	ID           int64         `json:"id"`
	Reference    string        `json:"reference"`
	Status       BookingStatus `json:"status"`
	UserID       *int64        `json:"user_id,omitempty"`
	RoomID       *int64        `json:"room_id,omitempty"`
	DishID       *int64        `json:"dish_id,omitempty"`
	CheckInDate  time.Time     `json:"check_in_date"`
	CheckOutDate time.Time     `json:"check_out_date"`
	NumPersons   int           `json:"num_persons"`
	TotalCost    float64       `json:"total_cost"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	User *User `json:"-"`
	Room *Room `json:"-"`
	Dish *Dish `json:"-"`
}

// Nights is the stay duration the total cost is computed from.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

const dateLayout = "2006-01-02"

// BookingRequest is the create-booking payload. Dates arrive as
// yyyy-MM-dd strings from existing clients.
type BookingRequest struct {
	RoomID       *int64 `json:"roomId,omitempty"`
	DishID       *int64 `json:"dishId,omitempty"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	NoOfPerson   int    `json:"noOfPerson"`

	checkIn  time.Time
	checkOut time.Time
}

func (r *BookingRequest) Validate() error {
	if r.NoOfPerson < 1 {
		return fmt.Errorf("%w: noOfPerson must be at least 1", ErrValidation)
	}

	var err error
	r.checkIn, err = time.Parse(dateLayout, r.CheckInDate)
	if err != nil {
		return fmt.Errorf("%w: invalid checkInDate", ErrValidation)
	}
	r.checkOut, err = time.Parse(dateLayout, r.CheckOutDate)
	if err != nil {
		return fmt.Errorf("%w: invalid checkOutDate", ErrValidation)
	}

	if !r.checkOut.After(r.checkIn) {
		return fmt.Errorf("%w: checkOutDate must be after checkInDate", ErrValidation)
	}
	return nil
}

// CheckIn returns the parsed check-in date. Valid only after Validate.
func (r *BookingRequest) CheckIn() time.Time { return r.checkIn }

// CheckOut returns the parsed check-out date. Valid only after Validate.
func (r *BookingRequest) CheckOut() time.Time { return r.checkOut }

// BookingResponse is the shape exposed at the API boundary. Missing
// optional relations are substituted with "N/A" / "Unknown" rather than
// nulls; existing clients depend on these sentinels.
type BookingResponse struct {
	BookingID    int64   `json:"bookingId"`
	Reference    string  `json:"reference"`
	CuisineType  string  `json:"cuisineType"`
	TotalCost    float64 `json:"totalCost"`
	Status       string  `json:"status"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	NoOfPerson   int     `json:"noOfPerson"`
	RoomName     string  `json:"roomName"`
	UserName     string  `json:"userName"`
	UserEmail    string  `json:"userEmail"`
}

func (b *Booking) ToResponse() BookingResponse {
	resp := BookingResponse{
		BookingID:    b.ID,
		Reference:    b.Reference,
		CuisineType:  "N/A",
		TotalCost:    b.TotalCost,
		Status:       string(b.Status),
		CheckInDate:  b.CheckInDate.Format(dateLayout),
		CheckOutDate: b.CheckOutDate.Format(dateLayout),
		NoOfPerson:   b.NumPersons,
		RoomName:     "N/A",
		UserName:     "Unknown",
		UserEmail:    "N/A",
	}

	if b.Dish != nil {
		resp.CuisineType = b.Dish.CuisineName
	}
	if b.Room != nil {
		resp.RoomName = b.Room.RoomType
	}
	if b.User != nil {
		resp.UserName = b.User.Name
		resp.UserEmail = b.User.Email
	}

	return resp
}
