package models

import "math"

// Book is a title held by the network. Rating is derived from reviews and
// ignored on writes.
type Book struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title" validate:"required,max=200"`
	AuthorID       *int64  `json:"author_id" validate:"omitempty,gt=0"`
	PublishingDate Date    `json:"publishing_date" validate:"required"`
	Genre          Genre   `json:"genre" validate:"choice"`
	Summary        string  `json:"summary"`
	Pages          int     `json:"pages" validate:"gte=0,lte=10000"`
	CategoryID     *int64  `json:"category_id" validate:"omitempty,gt=0"`
	Rating         float64 `json:"rating"`
}

// Review is a member's rating of a book
type Review struct {
	ID          int64   `json:"id"`
	BookID      int64   `json:"book_id" validate:"gt=0"`
	ReviewerID  int64   `json:"reviewer_id" validate:"gt=0"`
	Rating      float64 `json:"rating" validate:"gte=1,lte=5"`
	Description string  `json:"description"`
}

// AverageRating is the mean of ratings rounded to two decimals, or 0 when
// there are none.
func AverageRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return RoundRating(sum / float64(len(ratings)))
}

// RoundRating rounds to two decimal places
func RoundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
