package ratelimit

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lemans/hotel-bookings/internal/http/response"
	"github.com/lemans/hotel-bookings/pkg/config"
	"github.com/lemans/hotel-bookings/pkg/logger"
)

// Limiter is a fixed-window counter backed by redis. It fails open: a
// redis error lets the request through rather than blocking auth traffic.
type Limiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
}

func NewLimiter(client *redis.Client, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		client:   client,
		requests: cfg.Requests,
		window:   cfg.Window,
	}
}

func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DB = cfg.DB
	return redis.NewClient(opts), nil
}

// Allow increments the counter for key and reports whether the caller is
// within the window budget.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	// Hash the key so raw emails and IPs never land in redis.
	hashed := fmt.Sprintf("ratelimit:%x", sha256.Sum256([]byte(key)))

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	count, err := l.client.Incr(ctx, hashed).Result()
	if err != nil {
		logger.WarnContext(ctx, "Rate limit check failed, allowing request", "error", err)
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, hashed, l.window).Err(); err != nil {
			logger.WarnContext(ctx, "Failed to set rate limit expiry", "error", err)
		}
	}

	return count <= int64(l.requests)
}

// Middleware rate limits by client IP.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.Allow(r.Context(), ip) {
			response.RateLimit(w, "Too many requests. Try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For accumulates one entry per proxy hop; the first is
	// the originating client.
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
