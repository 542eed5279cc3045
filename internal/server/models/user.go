package models

import "time"

// User is an identity record. PasswordHash holds a bcrypt hash; the
// plaintext password is never stored or logged. Email is the login key and
// is unique across all users.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
