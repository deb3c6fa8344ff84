package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"

	"github.com/lemans/hotel-bookings/internal/domain"
	"github.com/lemans/hotel-bookings/internal/mailer"
	"github.com/lemans/hotel-bookings/internal/repository"
	"github.com/lemans/hotel-bookings/pkg/auth"
	"github.com/lemans/hotel-bookings/pkg/config"
	"github.com/lemans/hotel-bookings/pkg/events"
	"github.com/lemans/hotel-bookings/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
	SendOTP(ctx context.Context, email string) error
	VerifyOTPAndReset(ctx context.Context, req *domain.VerifyOTPRequest) (bool, error)
}

type authService struct {
	userRepo repository.UserRepository
	otpRepo  repository.OTPRepository
	mailer   mailer.Service
	eventBus events.Publisher
	config   *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	otpRepo repository.OTPRepository,
	mailer mailer.Service,
	eventBus events.Publisher,
	config *config.Config,
) AuthService {
	return &authService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		mailer:   mailer,
		eventBus: eventBus,
		config:   config,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Username, req.Email, passwordHash, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	event := events.UserRegisteredEvent{
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		RegisteredAt: user.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.UserRegistered, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish user registered event", "error", err, "user_id", user.ID)
	}

	// Welcome mail is best-effort; a delivery failure never rolls back
	// the registration.
	if err := s.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
		logger.WarnContext(ctx, "Failed to send welcome email", "error", err, "user_id", user.ID)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	// Unknown email and wrong password must be indistinguishable.
	if user == nil {
		return nil, domain.ErrAuth
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, domain.ErrAuth
	}

	token, err := auth.NewSessionToken(
		user.ID,
		user.Email,
		user.Role,
		s.generateScope(user.Role),
		s.config.Auth.JWTSecret,
		s.config.Auth.SessionTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session token: %w", err)
	}

	return &domain.AuthResponse{
		Token: token,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

func (s *authService) SendOTP(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		// Don't reveal whether the email is registered; the handler
		// answers "OTP sent" either way.
		logger.InfoContext(ctx, "OTP requested for unknown email", "email", email)
		return nil
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}

	expiresAt := time.Now().Add(s.config.Auth.OTPTTL)
	if err := s.otpRepo.Create(ctx, email, string(codeHash), expiresAt); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := s.mailer.SendOTPEmail(email, code); err != nil {
		logger.ErrorContext(ctx, "Failed to send OTP email", "error", err, "user_id", user.ID)
		// Code is persisted; the request still succeeds.
	}

	return nil
}

func (s *authService) VerifyOTPAndReset(ctx context.Context, req *domain.VerifyOTPRequest) (bool, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return false, err
	}

	ok, err := s.otpRepo.Consume(ctx, req.Email, req.OTP, s.config.Auth.OTPMaxAttempts)
	if err != nil {
		return false, fmt.Errorf("failed to verify otp: %w", err)
	}
	if !ok {
		return false, nil
	}

	passwordHash, err := argon2id.CreateHash(req.NewPassword, argon2id.DefaultParams)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, req.Email, passwordHash); err != nil {
		return false, fmt.Errorf("failed to update password: %w", err)
	}

	event := events.PasswordResetEvent{Email: req.Email, ResetAt: time.Now()}
	if err := s.eventBus.Publish(ctx, events.PasswordReset, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish password reset event", "error", err)
	}

	return true, nil
}

func (s *authService) generateScope(role string) string {
	switch role {
	case domain.RoleAdmin:
		return "bookings:read bookings:write catalog:read catalog:write users:read"
	case domain.RoleUser:
		return "bookings:read:self bookings:write:self catalog:read"
	default:
		return ""
	}
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
