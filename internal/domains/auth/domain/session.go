package domain

import "time"

// Session is the identity the console acts as.
type Session struct {
	UserID    string
	Anonymous bool
	CreatedAt time.Time
}

// IsZero reports whether no identity is set.
func (s Session) IsZero() bool { return s.UserID == "" }
