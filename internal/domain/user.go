package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Role         string    `json:"role"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the login payload: the signed session token plus the
// identity it was issued for.
type AuthResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// Valid user roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var validRoles = map[string]bool{
	RoleUser:  true,
	RoleAdmin: true,
}

func IsValidRole(role string) bool {
	return validRoles[role]
}

func (r *CreateUserRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	return nil
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

func (r *VerifyOTPRequest) Validate() error {
	if r.Email == "" || r.OTP == "" {
		return fmt.Errorf("%w: email and otp are required", ErrValidation)
	}
	if len(r.NewPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	return nil
}

func (r *CreateUserRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.Username = strings.TrimSpace(r.Username)
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

func (r *VerifyOTPRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.OTP = strings.TrimSpace(r.OTP)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
