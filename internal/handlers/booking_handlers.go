package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lemans/hotel-bookings/internal/domain"
	"github.com/lemans/hotel-bookings/internal/http/response"
)

// ListUserBookings returns the caller's bookings. The owner is always the
// authenticated principal, never a client-supplied field.
func (h *Handlers) ListUserBookings(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.bookingService.ListByUserEmail(r.Context(), claims.Email)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeBookingResponses(w, bookings)
}

// CreateBooking creates a booking owned by the authenticated user
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req domain.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	booking, err := h.bookingService.Create(r.Context(), claims.Email, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking.ToResponse())
}

func writeBookingResponses(w http.ResponseWriter, bookings []domain.Booking) {
	responses := make([]domain.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}
	writeJSON(w, http.StatusOK, responses)
}
