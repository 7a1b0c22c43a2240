package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nbfilms/studio-api/internal/domain/catalog"
	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// ServiceModel is the GORM model for the services table.
type ServiceModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title       string          `gorm:"uniqueIndex;not null;size:200"`
	Description string          `gorm:"type:text;not null"`
	MainImage   string          `gorm:"type:text;not null"`
	Thumbnails  json.RawMessage `gorm:"type:jsonb"`
	Inclusions  json.RawMessage `gorm:"type:jsonb"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ServiceModel) TableName() string { return "services" }

// RatingModel is the GORM model for the ratings table.
type RatingModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID      string    `gorm:"size:100"`
	ServicePackage string    `gorm:"not null;size:200;index"`
	Stars          int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RatingModel) TableName() string { return "ratings" }

// GormServiceRepository is the GORM-based implementation of
// catalog.ServiceRepository.
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository.
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// Save persists a new service package.
func (r *GormServiceRepository) Save(ctx context.Context, s *catalog.ServicePackage) error {
	model, err := toServiceModel(s)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.NewConflictError("a service with this title already exists")
		}
		return apperr.NewStoreWriteError("create service", err)
	}
	return nil
}

// Update persists changes to an existing service package.
func (r *GormServiceRepository) Update(ctx context.Context, s *catalog.ServicePackage) error {
	model, err := toServiceModel(s)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&ServiceModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":       model.Title,
			"description": model.Description,
			"main_image":  model.MainImage,
			"thumbnails":  model.Thumbnails,
			"inclusions":  model.Inclusions,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return apperr.NewStoreWriteError("update service", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFoundError("service", model.ID.String())
	}
	return nil
}

// Delete removes a service package.
func (r *GormServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ServiceModel{}).Error; err != nil {
		return apperr.NewStoreWriteError("delete service", err)
	}
	return nil
}

// FindByID retrieves a service package.
func (r *GormServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ServicePackage, error) {
	var model ServiceModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("service", id.String())
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	return toDomainService(&model)
}

// ListAll retrieves every service package ordered by title.
func (r *GormServiceRepository) ListAll(ctx context.Context) ([]*catalog.ServicePackage, error) {
	var models []ServiceModel
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	services := make([]*catalog.ServicePackage, len(models))
	for i, m := range models {
		s, err := toDomainService(&m)
		if err != nil {
			return nil, err
		}
		services[i] = s
	}
	return services, nil
}

// TitleExists reports whether any service has the given title.
func (r *GormServiceRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ServiceModel{}).
		Where("title = ?", title).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check service title: %w", err)
	}
	return count > 0, nil
}

// GormRatingRepository is the GORM-based implementation of
// catalog.RatingRepository.
type GormRatingRepository struct {
	db *gorm.DB
}

// NewGormRatingRepository creates a new GormRatingRepository.
func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

// Save persists a new rating.
func (r *GormRatingRepository) Save(ctx context.Context, rating *catalog.Rating) error {
	model := RatingModel{
		ID:             rating.ID,
		BookingID:      rating.BookingID,
		ServicePackage: rating.ServicePackage,
		Stars:          rating.Stars,
		CreatedAt:      rating.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return apperr.NewStoreWriteError("create rating", err)
	}
	return nil
}

// ListByPackage returns all ratings for one service package.
func (r *GormRatingRepository) ListByPackage(ctx context.Context, servicePackage string) ([]*catalog.Rating, error) {
	var models []RatingModel
	if err := r.db.WithContext(ctx).
		Where("service_package = ?", servicePackage).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return toDomainRatings(models), nil
}

// ListAll returns every rating.
func (r *GormRatingRepository) ListAll(ctx context.Context) ([]*catalog.Rating, error) {
	var models []RatingModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return toDomainRatings(models), nil
}

// --- Conversion helpers ---

func toServiceModel(s *catalog.ServicePackage) (*ServiceModel, error) {
	thumbs, err := json.Marshal(s.Thumbnails)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal thumbnails: %w", err)
	}
	inclusions, err := json.Marshal(s.Inclusions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inclusions: %w", err)
	}
	return &ServiceModel{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		MainImage:   s.MainImage,
		Thumbnails:  thumbs,
		Inclusions:  inclusions,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}, nil
}

func toDomainService(m *ServiceModel) (*catalog.ServicePackage, error) {
	var thumbs []string
	if len(m.Thumbnails) > 0 {
		if err := json.Unmarshal(m.Thumbnails, &thumbs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal thumbnails: %w", err)
		}
	}
	var inclusions []string
	if len(m.Inclusions) > 0 {
		if err := json.Unmarshal(m.Inclusions, &inclusions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal inclusions: %w", err)
		}
	}
	return &catalog.ServicePackage{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		MainImage:   m.MainImage,
		Thumbnails:  thumbs,
		Inclusions:  inclusions,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func toDomainRatings(models []RatingModel) []*catalog.Rating {
	ratings := make([]*catalog.Rating, len(models))
	for i, m := range models {
		ratings[i] = &catalog.Rating{
			ID:             m.ID,
			BookingID:      m.BookingID,
			ServicePackage: m.ServicePackage,
			Stars:          m.Stars,
			CreatedAt:      m.CreatedAt,
		}
	}
	return ratings
}
