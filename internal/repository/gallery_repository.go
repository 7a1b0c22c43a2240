package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nbfilms/studio-api/internal/domain/gallery"
	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// CategoryModel is the GORM model for the gallery_categories table.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;size:200"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CategoryModel) TableName() string { return "gallery_categories" }

// GalleryImageModel is the GORM model for the gallery_images table.
type GalleryImageModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL        string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (GalleryImageModel) TableName() string { return "gallery_images" }

// GormGalleryRepository is the GORM-based implementation of
// gallery.Repository.
type GormGalleryRepository struct {
	db *gorm.DB
}

// NewGormGalleryRepository creates a new GormGalleryRepository.
func NewGormGalleryRepository(db *gorm.DB) *GormGalleryRepository {
	return &GormGalleryRepository{db: db}
}

// SaveCategory persists a new category.
func (r *GormGalleryRepository) SaveCategory(ctx context.Context, c *gallery.Category) error {
	model := CategoryModel{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return apperr.NewStoreWriteError("create category", err)
	}
	return nil
}

// RenameCategory updates a category's display name.
func (r *GormGalleryRepository) RenameCategory(ctx context.Context, id uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).
		Model(&CategoryModel{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return apperr.NewStoreWriteError("rename category", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFoundError("category", id.String())
	}
	return nil
}

// DeleteCategory removes the category and all of its images in one
// transaction.
func (r *GormGalleryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&GalleryImageModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&CategoryModel{}).Error
	})
	if err != nil {
		return apperr.NewStoreWriteError("delete category", err)
	}
	return nil
}

// ListCategories returns every category ordered by name.
func (r *GormGalleryRepository) ListCategories(ctx context.Context) ([]*gallery.Category, error) {
	var models []CategoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*gallery.Category, len(models))
	for i, m := range models {
		categories[i] = &gallery.Category{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
	}
	return categories, nil
}

// FindCategory retrieves one category.
func (r *GormGalleryRepository) FindCategory(ctx context.Context, id uuid.UUID) (*gallery.Category, error) {
	var model CategoryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("category", id.String())
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &gallery.Category{ID: model.ID, Name: model.Name, CreatedAt: model.CreatedAt}, nil
}

// SaveImage persists a new gallery image.
func (r *GormGalleryRepository) SaveImage(ctx context.Context, img *gallery.Image) error {
	model := GalleryImageModel{
		ID:         img.ID,
		CategoryID: img.CategoryID,
		URL:        img.URL,
		CreatedAt:  img.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return apperr.NewStoreWriteError("create gallery image", err)
	}
	return nil
}

// ListImages returns all images in a category, oldest first.
func (r *GormGalleryRepository) ListImages(ctx context.Context, categoryID uuid.UUID) ([]*gallery.Image, error) {
	var models []GalleryImageModel
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}

	images := make([]*gallery.Image, len(models))
	for i, m := range models {
		images[i] = &gallery.Image{ID: m.ID, CategoryID: m.CategoryID, URL: m.URL, CreatedAt: m.CreatedAt}
	}
	return images, nil
}

// DeleteImage removes one image from a category.
func (r *GormGalleryRepository) DeleteImage(ctx context.Context, categoryID, imageID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("id = ? AND category_id = ?", imageID, categoryID).
		Delete(&GalleryImageModel{}).Error; err != nil {
		return apperr.NewStoreWriteError("delete gallery image", err)
	}
	return nil
}
