package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nbfilms/studio-api/internal/domain/studio"
)

// CreateFounderRequest carries a new founder entry.
type CreateFounderRequest struct {
	Name        string
	Description string
	Image       *ImageUpload
}

// UpdateFounderRequest carries changes to an existing founder. An omitted
// image keeps the stored URL.
type UpdateFounderRequest struct {
	Name        string
	Description string
	Image       *ImageUpload
}

// StudioService manages the about-page founders and the contact record.
type StudioService struct {
	founders studio.FounderRepository
	contact  studio.ContactRepository
	uploader Uploader
	logger   *zap.Logger
}

// NewStudioService creates a StudioService.
func NewStudioService(
	founders studio.FounderRepository,
	contact studio.ContactRepository,
	uploader Uploader,
	logger *zap.Logger,
) *StudioService {
	return &StudioService{
		founders: founders,
		contact:  contact,
		uploader: uploader,
		logger:   logger,
	}
}

// CreateFounder uploads the portrait (if any) and persists the entry.
func (s *StudioService) CreateFounder(ctx context.Context, req CreateFounderRequest) (*studio.Founder, error) {
	var imageURL string
	if req.Image != nil {
		url, err := s.uploader.Upload(ctx, req.Image.Name, req.Image.Data)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	founder, err := studio.NewFounder(req.Name, req.Description, imageURL)
	if err != nil {
		return nil, err
	}
	if err := s.founders.Save(ctx, founder); err != nil {
		return nil, err
	}
	return founder, nil
}

// UpdateFounder persists changes to an existing founder.
func (s *StudioService) UpdateFounder(ctx context.Context, id uuid.UUID, req UpdateFounderRequest) (*studio.Founder, error) {
	founder, err := s.founders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		founder.Name = req.Name
	}
	if req.Description != "" {
		founder.Description = req.Description
	}
	if req.Image != nil {
		url, err := s.uploader.Upload(ctx, req.Image.Name, req.Image.Data)
		if err != nil {
			return nil, err
		}
		founder.Image = url
	}
	founder.UpdatedAt = time.Now().UTC()

	if err := s.founders.Update(ctx, founder); err != nil {
		return nil, err
	}
	return founder, nil
}

// DeleteFounder removes a founder entry.
func (s *StudioService) DeleteFounder(ctx context.Context, id uuid.UUID) error {
	return s.founders.Delete(ctx, id)
}

// ListFounders returns every founder.
func (s *StudioService) ListFounders(ctx context.Context) ([]*studio.Founder, error) {
	return s.founders.ListAll(ctx)
}

// GetContactInfo returns the single contact record.
func (s *StudioService) GetContactInfo(ctx context.Context) (*studio.ContactInfo, error) {
	return s.contact.Get(ctx)
}

// PutContactInfo validates and upserts the contact record.
func (s *StudioService) PutContactInfo(ctx context.Context, info studio.ContactInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}
	return s.contact.Put(ctx, info)
}

// DeleteContactInfo removes the contact record.
func (s *StudioService) DeleteContactInfo(ctx context.Context) error {
	return s.contact.Delete(ctx)
}
