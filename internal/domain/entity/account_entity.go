package entity

import "time"

// Account is a locally managed login identity. Passwords are stored as
// bcrypt hashes in PasswordHash.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the server-side record of a signed-in user, keyed by user id.
type Session struct {
	UserID    string
	Email     string
	SessionID string
	CreatedAt time.Time
}
