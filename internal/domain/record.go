// Package domain contains the core business entities and domain logic for bexshelf.
//
// JSON field names are camelCase to stay byte-compatible with the data
// files the original web client already reads and writes.
package domain

import "time"

// Record provides the common fields every stored entity carries.
// It gets embedded in each domain type.
type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the underlying entity changes.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (r *Record) InitTimestamps() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}

// Owned provides the owning-user field shared by all user-scoped entities.
type Owned struct {
	UserID string `json:"userId"`
}

// OwnedBy reports whether the record belongs to the given user.
func (o Owned) OwnedBy(userID string) bool {
	return o.UserID == userID
}
