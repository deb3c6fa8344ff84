package handlers

import (
	"net/http"

	"github.com/lemans/hotel-bookings/internal/domain"
	"github.com/lemans/hotel-bookings/internal/http/response"
)

func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.catalogService.ListRooms(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	dtos := make([]domain.RoomDTO, 0, len(rooms))
	for i := range rooms {
		dtos = append(dtos, rooms[i].ToDTO())
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handlers) ListDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.catalogService.ListDishes(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	dtos := make([]domain.DishDTO, 0, len(dishes))
	for i := range dishes {
		dtos = append(dtos, dishes[i].ToDTO())
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handlers) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.catalogService.ListOffers(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	dtos := make([]domain.OfferDTO, 0, len(offers))
	for i := range offers {
		dtos = append(dtos, offers[i].ToDTO())
	}
	writeJSON(w, http.StatusOK, dtos)
}
