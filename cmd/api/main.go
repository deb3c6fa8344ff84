package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/lemans/hotel-bookings/internal/handlers"
	"github.com/lemans/hotel-bookings/internal/mailer"
	"github.com/lemans/hotel-bookings/internal/notify"
	"github.com/lemans/hotel-bookings/internal/ratelimit"
	"github.com/lemans/hotel-bookings/internal/repository"
	"github.com/lemans/hotel-bookings/internal/service"
	"github.com/lemans/hotel-bookings/pkg/config"
	"github.com/lemans/hotel-bookings/pkg/database"
	"github.com/lemans/hotel-bookings/pkg/events"
	"github.com/lemans/hotel-bookings/pkg/logger"
	mw "github.com/lemans/hotel-bookings/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info(".env not found, continuing with environment variables")
	}

	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Rate limiting is optional: without redis the auth endpoints are
	// simply unthrottled.
	var authLimiter *ratelimit.Limiter
	if redisClient, err := ratelimit.NewClient(cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, auth rate limiting disabled", "error", err)
	} else {
		authLimiter = ratelimit.NewLimiter(redisClient, cfg.RateLimit)
	}

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	otpRepo := repository.NewOTPRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	// Periodic cleanup of stale password-reset codes.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := otpRepo.DeleteExpired(context.Background()); err != nil {
				logger.Warn("Failed to purge expired reset codes", "error", err)
			} else if n > 0 {
				logger.Info("Purged expired reset codes", "count", n)
			}
		}
	}()

	// Services
	mailSvc := mailer.FromConfig(cfg.Email)

	notifyWorker := notify.NewWorker(eventBus, mailSvc)
	if err := notifyWorker.Start(); err != nil {
		logger.Warn("Notification worker failed to start", "error", err)
	}

	authService := service.NewAuthService(userRepo, otpRepo, mailSvc, eventBus, cfg)
	bookingService := service.NewBookingService(bookingRepo, catalogRepo, userRepo, eventBus)
	catalogService := service.NewCatalogService(catalogRepo)

	h := handlers.New(authService, bookingService, catalogService, authLimiter, cfg)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting hotel bookings API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
