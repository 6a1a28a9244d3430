package models

import "time"

// Session binds an opaque cookie token to an authenticated user.
// Expired rows are removed by the sweeper and lazily on resolution.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}
