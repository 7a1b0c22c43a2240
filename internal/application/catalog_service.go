package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nbfilms/studio-api/internal/domain/catalog"
	"github.com/nbfilms/studio-api/internal/events"
	"github.com/nbfilms/studio-api/internal/platform/apperr"
	"github.com/nbfilms/studio-api/internal/platform/kafka"
)

// Uploader pushes image bytes to the external image host and returns the
// hosted URL.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// ImageUpload is one image file submitted through a multipart form.
type ImageUpload struct {
	Name string
	Data []byte
}

// CreateServiceRequest carries a new service package plus its images.
type CreateServiceRequest struct {
	Title       string
	Description string
	Inclusions  []string
	MainImage   ImageUpload
	Thumbnails  []ImageUpload
}

// UpdateServiceRequest carries changes to an existing service package. Images
// are optional; omitted images keep their stored URLs.
type UpdateServiceRequest struct {
	Title       string
	Description string
	Inclusions  []string
	MainImage   *ImageUpload
	Thumbnails  []ImageUpload
}

// SubmitRatingRequest is the public feedback payload.
type SubmitRatingRequest struct {
	BookingID      string `json:"bookingId"`
	ServicePackage string `json:"package" binding:"required"`
	Stars          int    `json:"rating" binding:"required"`
}

// CatalogService manages service packages and their ratings. Image uploads
// run before any store write; an upload failure blocks the write entirely.
type CatalogService struct {
	services  catalog.ServiceRepository
	ratings   catalog.RatingRepository
	uploader  Uploader
	publisher EventPublisher
	logger    *zap.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(
	services catalog.ServiceRepository,
	ratings catalog.RatingRepository,
	uploader Uploader,
	publisher EventPublisher,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		services:  services,
		ratings:   ratings,
		uploader:  uploader,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateService uploads all images and persists the new package.
func (s *CatalogService) CreateService(ctx context.Context, req CreateServiceRequest) (*catalog.ServicePackage, error) {
	if len(req.Thumbnails) > catalog.MaxThumbnails {
		return nil, apperr.NewValidationError("too many thumbnails")
	}
	if len(req.MainImage.Data) == 0 {
		return nil, apperr.NewValidationError("main image is required")
	}

	mainURL, err := s.uploader.Upload(ctx, req.MainImage.Name, req.MainImage.Data)
	if err != nil {
		return nil, err
	}
	thumbURLs, err := s.uploadAll(ctx, req.Thumbnails)
	if err != nil {
		return nil, err
	}

	pkg, err := catalog.NewServicePackage(req.Title, req.Description, mainURL, thumbURLs, req.Inclusions)
	if err != nil {
		return nil, err
	}
	if err := s.services.Save(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// UpdateService uploads any replacement images and persists the changes.
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, req UpdateServiceRequest) (*catalog.ServicePackage, error) {
	if len(req.Thumbnails) > catalog.MaxThumbnails {
		return nil, apperr.NewValidationError("too many thumbnails")
	}

	existing, err := s.services.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		existing.Title = req.Title
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Inclusions != nil {
		existing.Inclusions = req.Inclusions
	}
	if req.MainImage != nil {
		url, err := s.uploader.Upload(ctx, req.MainImage.Name, req.MainImage.Data)
		if err != nil {
			return nil, err
		}
		existing.MainImage = url
	}
	if len(req.Thumbnails) > 0 {
		urls, err := s.uploadAll(ctx, req.Thumbnails)
		if err != nil {
			return nil, err
		}
		existing.Thumbnails = urls
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.services.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteService removes a service package. Bookings referencing its title are
// untouched; the reference is loose.
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.services.Delete(ctx, id)
}

// GetService retrieves one service package.
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*catalog.ServicePackage, error) {
	return s.services.FindByID(ctx, id)
}

// ListServices returns the full catalog.
func (s *CatalogService) ListServices(ctx context.Context) ([]*catalog.ServicePackage, error) {
	return s.services.ListAll(ctx)
}

// SubmitRating records a visitor rating and publishes the event.
func (s *CatalogService) SubmitRating(ctx context.Context, req SubmitRatingRequest) (*catalog.Rating, error) {
	rating, err := catalog.NewRating(req.BookingID, req.ServicePackage, req.Stars)
	if err != nil {
		return nil, err
	}
	if err := s.ratings.Save(ctx, rating); err != nil {
		return nil, err
	}

	event, err := kafka.NewCloudEvent(eventSource, events.RatingSubmitted, events.RatingSubmittedEvent{
		RatingID:       rating.ID,
		BookingID:      rating.BookingID,
		ServicePackage: rating.ServicePackage,
		Stars:          rating.Stars,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to build rating event", zap.Error(err))
	} else if err := s.publisher.PublishEvent(ctx, events.TopicBookingEvents, event); err != nil {
		s.logger.Error("failed to publish rating event", zap.Error(err))
	}

	return rating, nil
}

// RatingSummary aggregates the ratings of one service package.
func (s *CatalogService) RatingSummary(ctx context.Context, servicePackage string) (catalog.RatingSummary, error) {
	ratings, err := s.ratings.ListByPackage(ctx, servicePackage)
	if err != nil {
		return catalog.RatingSummary{}, err
	}
	return catalog.Summarize(ratings), nil
}

func (s *CatalogService) uploadAll(ctx context.Context, images []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(images))
	for i, img := range images {
		url, err := s.uploader.Upload(ctx, img.Name, img.Data)
		if err != nil {
			return nil, fmt.Errorf("thumbnail %d: %w", i+1, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}
