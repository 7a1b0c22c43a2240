package catalog

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// Rating is a visitor's 1-5 star rating of a completed booking. Both
// references are loose strings; neither is enforced referentially.
type Rating struct {
	ID             uuid.UUID
	BookingID      string
	ServicePackage string
	Stars          int
	CreatedAt      time.Time
}

// NewRating validates and creates a rating.
func NewRating(bookingID, servicePackage string, stars int) (*Rating, error) {
	if servicePackage == "" {
		return nil, apperr.NewValidationError("package is required")
	}
	if stars < 1 || stars > 5 {
		return nil, apperr.NewValidationError("rating must be between 1 and 5")
	}
	return &Rating{
		ID:             uuid.New(),
		BookingID:      bookingID,
		ServicePackage: servicePackage,
		Stars:          stars,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// RatingSummary is the aggregate displayed on the public site.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// Summarize computes the arithmetic mean (one decimal place) and count.
func Summarize(ratings []*Rating) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}
	var sum int
	for _, r := range ratings {
		sum += r.Stars
	}
	avg := float64(sum) / float64(len(ratings))
	return RatingSummary{
		Average: math.Round(avg*10) / 10,
		Count:   int64(len(ratings)),
	}
}
