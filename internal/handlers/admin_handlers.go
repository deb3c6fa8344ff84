package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lemans/hotel-bookings/internal/domain"
	"github.com/lemans/hotel-bookings/internal/http/response"
)

// ListAllBookings lists every booking, optionally filtered by status
func (h *Handlers) ListAllBookings(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil || !claims.IsAdmin() {
		response.Forbidden(w, "Admin access required")
		return
	}

	limit, offset := parsePagination(r)

	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		st, ok := domain.ParseBookingStatus(statusParam)
		if !ok {
			response.BadRequest(w, "Invalid status parameter")
			return
		}
		bookings, err := h.bookingService.ListByStatus(r.Context(), st, limit, offset)
		if err != nil {
			response.FromError(w, err)
			return
		}
		writeBookingResponses(w, bookings)
		return
	}

	bookings, err := h.bookingService.ListAll(r.Context(), limit, offset)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeBookingResponses(w, bookings)
}

// UpdateBookingStatus sets a booking's status from the `status` query param
func (h *Handlers) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil || !claims.IsAdmin() {
		response.Forbidden(w, "Admin access required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		response.BadRequest(w, "Missing status parameter")
		return
	}

	updated, err := h.bookingService.UpdateStatus(r.Context(), id, status)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated.ToResponse())
}

// CreateRoom adds a room to the inventory
func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil || !claims.IsAdmin() {
		response.Forbidden(w, "Admin access required")
		return
	}

	var req domain.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	room, err := h.catalogService.CreateRoom(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, room.ToDTO())
}

// SetRoomAvailability toggles whether a room can be booked
func (h *Handlers) SetRoomAvailability(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil || !claims.IsAdmin() {
		response.Forbidden(w, "Admin access required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	var req struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	room, err := h.catalogService.SetRoomAvailability(r.Context(), id, req.Available)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, room.ToDTO())
}

// CreateDish adds a dish to the dining catalog
func (h *Handlers) CreateDish(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil || !claims.IsAdmin() {
		response.Forbidden(w, "Admin access required")
		return
	}

	var req domain.CreateDishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	dish, err := h.catalogService.CreateDish(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dish.ToDTO())
}

// CreateOffer publishes a promotional offer
func (h *Handlers) CreateOffer(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil || !claims.IsAdmin() {
		response.Forbidden(w, "Admin access required")
		return
	}

	var req domain.CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	offer, err := h.catalogService.CreateOffer(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, offer.ToDTO())
}
