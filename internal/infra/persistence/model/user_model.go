// Package model contains the GORM persistence models mirroring the database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
// The unique index on email is the single source of truth for email
// uniqueness; racing registrations are resolved by this constraint.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone          string    `gorm:"type:varchar(50);not null"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	ProfilePicture string    `gorm:"type:varchar(512)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
