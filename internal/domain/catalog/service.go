// Package catalog holds the service packages offered by the studio and the
// visitor ratings referencing them.
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// MaxThumbnails caps the thumbnail strip shown on a service card.
const MaxThumbnails = 4

// ServicePackage is a bookable offering. The title doubles as the loose key
// referenced by bookings and ratings.
type ServicePackage struct {
	ID          uuid.UUID
	Title       string
	Description string
	MainImage   string
	Thumbnails  []string
	Inclusions  []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewServicePackage validates and creates a service package.
func NewServicePackage(title, description, mainImage string, thumbnails, inclusions []string) (*ServicePackage, error) {
	if title == "" {
		return nil, apperr.NewValidationError("title is required")
	}
	if description == "" {
		return nil, apperr.NewValidationError("description is required")
	}
	if mainImage == "" {
		return nil, apperr.NewValidationError("main image is required")
	}
	if len(thumbnails) > MaxThumbnails {
		return nil, apperr.NewValidationError("too many thumbnails")
	}

	now := time.Now().UTC()
	return &ServicePackage{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		MainImage:   mainImage,
		Thumbnails:  thumbnails,
		Inclusions:  inclusions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
