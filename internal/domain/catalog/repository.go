package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ServiceRepository defines persistence operations for service packages.
type ServiceRepository interface {
	Save(ctx context.Context, s *ServicePackage) error
	Update(ctx context.Context, s *ServicePackage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*ServicePackage, error)
	ListAll(ctx context.Context) ([]*ServicePackage, error)
	TitleExists(ctx context.Context, title string) (bool, error)
}

// RatingRepository defines persistence operations for ratings.
type RatingRepository interface {
	Save(ctx context.Context, r *Rating) error
	ListByPackage(ctx context.Context, servicePackage string) ([]*Rating, error)
	ListAll(ctx context.Context) ([]*Rating, error)
}
