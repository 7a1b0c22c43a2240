package gallery

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for categories and their images.
type Repository interface {
	SaveCategory(ctx context.Context, c *Category) error
	RenameCategory(ctx context.Context, id uuid.UUID, name string) error
	// DeleteCategory removes the category and all of its images.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]*Category, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*Category, error)

	SaveImage(ctx context.Context, img *Image) error
	ListImages(ctx context.Context, categoryID uuid.UUID) ([]*Image, error)
	DeleteImage(ctx context.Context, categoryID, imageID uuid.UUID) error
}
