// internal/models/review.go
package models

import (
	"strings"

	"github.com/google/uuid"
)

// Review holds one rating plus optional text, written by one user for one
// product. The composite unique index is the authoritative guard against a
// user reviewing the same product twice; the service-level pre-check only
// exists for a friendlier error message.
type Review struct {
	BaseModel
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_author_product,priority:1"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_author_product,priority:2"`
	Rating    int       `json:"rating" gorm:"not null"`
	Text      string    `json:"text" gorm:"size:1000"`

	// Relationships
	Author  User    `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ReviewStatistics aggregates a set of reviews. The distribution always
// carries all five rating keys, even when their count is zero.
type ReviewStatistics struct {
	TotalReviews       int         `json:"total_reviews"`
	AverageRating      float64     `json:"average_rating"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}

const (
	MinRating = 1
	MaxRating = 5

	starFilled = "★"
	starEmpty  = "☆"
)

// RenderStars returns a fixed-width five-glyph string with the first
// `rating` stars filled. Out-of-range values are clamped for rendering.
func RenderStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > MaxRating {
		rating = MaxRating
	}
	return strings.Repeat(starFilled, rating) + strings.Repeat(starEmpty, MaxRating-rating)
}
