package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nbfilms/studio-api/internal/domain/gallery"
	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// GalleryService manages gallery categories and their hosted images.
type GalleryService struct {
	repo     gallery.Repository
	uploader Uploader
	logger   *zap.Logger
}

// NewGalleryService creates a GalleryService.
func NewGalleryService(repo gallery.Repository, uploader Uploader, logger *zap.Logger) *GalleryService {
	return &GalleryService{repo: repo, uploader: uploader, logger: logger}
}

// CreateCategory adds a new named category.
func (s *GalleryService) CreateCategory(ctx context.Context, name string) (*gallery.Category, error) {
	category, err := gallery.NewCategory(name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// RenameCategory changes a category's display name.
func (s *GalleryService) RenameCategory(ctx context.Context, id uuid.UUID, name string) error {
	if name == "" {
		return apperr.NewValidationError("category name is required")
	}
	return s.repo.RenameCategory(ctx, id, name)
}

// DeleteCategory removes a category together with its images.
func (s *GalleryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCategory(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteCategory(ctx, id)
}

// ListCategories returns every category.
func (s *GalleryService) ListCategories(ctx context.Context) ([]*gallery.Category, error) {
	return s.repo.ListCategories(ctx)
}

// AddImage uploads an image and attaches it to a category. An upload failure
// blocks the write.
func (s *GalleryService) AddImage(ctx context.Context, categoryID uuid.UUID, upload ImageUpload) (*gallery.Image, error) {
	if _, err := s.repo.FindCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	if len(upload.Data) == 0 {
		return nil, apperr.NewValidationError("image file is required")
	}

	url, err := s.uploader.Upload(ctx, upload.Name, upload.Data)
	if err != nil {
		return nil, err
	}

	img, err := gallery.NewImage(categoryID, url)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// ListImages returns the images of one category.
func (s *GalleryService) ListImages(ctx context.Context, categoryID uuid.UUID) ([]*gallery.Image, error) {
	if _, err := s.repo.FindCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.repo.ListImages(ctx, categoryID)
}

// DeleteImage removes one image from a category.
func (s *GalleryService) DeleteImage(ctx context.Context, categoryID, imageID uuid.UUID) error {
	return s.repo.DeleteImage(ctx, categoryID, imageID)
}
