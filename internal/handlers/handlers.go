package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lemans/hotel-bookings/internal/http/response"
	"github.com/lemans/hotel-bookings/internal/ratelimit"
	"github.com/lemans/hotel-bookings/internal/service"
	"github.com/lemans/hotel-bookings/pkg/auth"
	"github.com/lemans/hotel-bookings/pkg/config"
	"github.com/lemans/hotel-bookings/pkg/logger"
)

type contextKey string

const claimsKey contextKey = "claims"

type Handlers struct {
	authService    service.AuthService
	bookingService service.BookingService
	catalogService service.CatalogService
	authLimiter    *ratelimit.Limiter
	config         *config.Config
}

func New(
	authService service.AuthService,
	bookingService service.BookingService,
	catalogService service.CatalogService,
	authLimiter *ratelimit.Limiter,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		authService:    authService,
		bookingService: bookingService,
		catalogService: catalogService,
		authLimiter:    authLimiter,
		config:         cfg,
	}
}

func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		if h.authLimiter != nil {
			r.Use(h.authLimiter.Middleware)
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/forgotPassword", h.ForgotPassword)
		r.Post("/verifyOtp", h.VerifyOTP)
	})

	// Catalog browsing is public
	r.Get("/rooms", h.ListRooms)
	r.Get("/dishes", h.ListDishes)
	r.Get("/offers", h.ListOffers)

	r.Route("/user", func(r chi.Router) {
		r.Use(h.RequireJWT(""))
		r.Get("/bookings", h.ListUserBookings)
		r.Post("/bookings", h.CreateBooking)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.RequireJWT("admin"))
		r.Get("/bookings", h.ListAllBookings)
		r.Put("/bookings/{id}/status", h.UpdateBookingStatus)
		r.Post("/rooms", h.CreateRoom)
		r.Patch("/rooms/{id}/availability", h.SetRoomAvailability)
		r.Post("/dishes", h.CreateDish)
		r.Post("/offers", h.CreateOffer)
	})

	return r
}

// RequireJWT authenticates the bearer token and, when requiredRole is set,
// checks the claim's role. Admin satisfies any role requirement.
func (h *Handlers) RequireJWT(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.Unauthorized(w, "Missing or invalid authorization header")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			if requiredRole != "" && claims.Role != requiredRole && !claims.IsAdmin() {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), logger.UserIDKey, claims.Sub)
			ctx = context.WithValue(ctx, claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}
