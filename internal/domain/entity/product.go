// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a single catalog item. Unlike users, products carry no
// credential material, so the entity itself is the response shape.
type Product struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	RichDescription string    `json:"richDescription"` // Long-form description, optional.
	Image           string    `json:"image"`           // Reference (path or URL) to the main product image.
	Brand           string    `json:"brand"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	CountInStock    int       `json:"countInStock"`
	Rating          float64   `json:"rating"`     // Running average of submitted ratings.
	NumReviews      int       `json:"numReviews"` // Number of ratings folded into Rating.
	IsFeatured      bool      `json:"isFeatured"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ApplyRating folds one more rating value into the running average.
// The average over n reviews becomes (avg*n + value) / (n+1).
func (p *Product) ApplyRating(value float64) {
	n := p.NumReviews
	if n < 0 {
		n = 0
	}
	// n+1 is always >= 1, but keep the guard explicit for the average.
	p.Rating = (p.Rating*float64(n) + value) / float64(n+1)
	p.NumReviews = n + 1
}
