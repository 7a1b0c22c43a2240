package studio

import (
	"context"

	"github.com/google/uuid"
)

// FounderRepository defines persistence operations for founders.
type FounderRepository interface {
	Save(ctx context.Context, f *Founder) error
	Update(ctx context.Context, f *Founder) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Founder, error)
	ListAll(ctx context.Context) ([]*Founder, error)
}

// ContactRepository stores the single contact info record.
type ContactRepository interface {
	Get(ctx context.Context) (*ContactInfo, error)
	Put(ctx context.Context, info ContactInfo) error
	Delete(ctx context.Context) error
}

// AdminRepository looks up console accounts.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*AdminAccount, error)
}
