// Package gallery holds the public gallery's categories and images.
package gallery

import (
	"time"

	"github.com/google/uuid"

	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// Category is a named grouping of gallery images.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// NewCategory validates and creates a category.
func NewCategory(name string) (*Category, error) {
	if name == "" {
		return nil, apperr.NewValidationError("category name is required")
	}
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Image is a hosted image belonging to one category.
type Image struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	URL        string
	CreatedAt  time.Time
}

// NewImage validates and creates a gallery image.
func NewImage(categoryID uuid.UUID, url string) (*Image, error) {
	if categoryID == uuid.Nil {
		return nil, apperr.NewValidationError("category is required")
	}
	if url == "" {
		return nil, apperr.NewValidationError("image URL is required")
	}
	return &Image{
		ID:         uuid.New(),
		CategoryID: categoryID,
		URL:        url,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
