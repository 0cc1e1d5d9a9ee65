package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Description     string    `gorm:"type:text;not null"`
	RichDescription string    `gorm:"type:text"`
	Image           string    `gorm:"type:varchar(512)"`
	Brand           string    `gorm:"type:varchar(100)"`
	Category        string    `gorm:"type:varchar(100);index"`
	Price           float64   `gorm:"not null;default:0"`
	CountInStock    int       `gorm:"not null;default:0"`
	Rating          float64   `gorm:"not null;default:0"`
	NumReviews      int       `gorm:"not null;default:0"`
	IsFeatured      bool      `gorm:"not null;default:false;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
