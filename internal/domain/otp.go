package domain

import "time"

// OneTimePassword is a short-lived password-reset code. The raw code is
// never stored; only its bcrypt hash. A record moves issued -> consumed or
// issued -> expired, both terminal.
type OneTimePassword struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	CodeHash  string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	Attempts  int        `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}

const OTPCodeLength = 6
