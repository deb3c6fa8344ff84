package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lemans/hotel-bookings/internal/domain"
	"github.com/lemans/hotel-bookings/internal/http/response"
)

// Register handles user registration
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Registered: " + user.Email,
	})
}

// Login handles credential checks and session token issuance
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ForgotPassword issues a one-time reset code. The response is the same
// whether or not the email is registered.
func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		response.BadRequest(w, "Email is required")
		return
	}

	if err := h.authService.SendOTP(r.Context(), req.Email); err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "OTP sent to email.",
	})
}

// VerifyOTP consumes a reset code and rotates the password
func (h *Handlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	ok, err := h.authService.VerifyOTPAndReset(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if !ok {
		response.BadRequest(w, "Invalid or expired OTP")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset successful.",
	})
}
