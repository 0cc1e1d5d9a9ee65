// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Email is the natural key used for
// login lookups; the store enforces its global uniqueness.
type User struct {
	ID             uuid.UUID // Unique identifier, assigned by the store on creation. Never changes afterwards.
	Name           string    // Display name.
	Email          string    // Login identifier, unique across all users.
	Phone          string    // Contact phone number. Stored as given, no format validation.
	PasswordHash   string    // bcrypt hash of the chosen password. The plaintext is never persisted or logged.
	ProfilePicture string    // Optional reference (path or URL) to an uploaded picture. Empty when none was provided.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicView strips credential material from the user for use in HTTP
// responses. The password hash must never leave the service.
type PublicView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	ProfilePicture string    `json:"profilePicture"`
}

// Public returns the response-safe view of the user.
func (u *User) Public() *PublicView {
	return &PublicView{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
	}
}
