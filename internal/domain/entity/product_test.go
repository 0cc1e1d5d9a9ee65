package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyRating(t *testing.T) {
	p := &Product{}

	p.ApplyRating(4)
	assert.InDelta(t, 4.0, p.Rating, 1e-9)
	assert.Equal(t, 1, p.NumReviews)

	p.ApplyRating(2)
	assert.InDelta(t, 3.0, p.Rating, 1e-9)
	assert.Equal(t, 2, p.NumReviews)

	p.ApplyRating(5)
	assert.InDelta(t, 11.0/3.0, p.Rating, 1e-9)
	assert.Equal(t, 3, p.NumReviews)
}

func TestApplyRating_ManyIdenticalRatingsStayStable(t *testing.T) {
	p := &Product{}

	for i := 0; i < 1000; i++ {
		p.ApplyRating(3)
	}

	assert.InDelta(t, 3.0, p.Rating, 1e-6)
	assert.Equal(t, 1000, p.NumReviews)
}

func TestApplyRating_RecoversFromNegativeReviewCount(t *testing.T) {
	p := &Product{Rating: 4, NumReviews: -7}

	p.ApplyRating(2)
	assert.InDelta(t, 2.0, p.Rating, 1e-9)
	assert.Equal(t, 1, p.NumReviews)
}
