package domain

import "time"

// User represents an authenticated account.
// Unlike the other entities, users are global rather than user-scoped,
// and they never get an UpdatedAt (accounts are immutable after signup).
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password,omitempty"` // stored hashed, filtered from API responses
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy safe for API responses, with the password hash stripped.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
