// Package studio holds site-wide content: founders, contact information and
// the admin accounts behind the console.
package studio

import (
	"time"

	"github.com/google/uuid"

	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// Founder is a person shown on the about page.
type Founder struct {
	ID          uuid.UUID
	Name        string
	Description string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewFounder validates and creates a founder entry.
func NewFounder(name, description, image string) (*Founder, error) {
	if name == "" {
		return nil, apperr.NewValidationError("name is required")
	}
	if description == "" {
		return nil, apperr.NewValidationError("description is required")
	}
	now := time.Now().UTC()
	return &Founder{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Image:       image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ContactInfo is the studio's single contact record shown in the site footer
// and on the contact page.
type ContactInfo struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

// Validate checks that every contact field is present.
func (c ContactInfo) Validate() error {
	if c.Phone == "" {
		return apperr.NewValidationError("phone is required")
	}
	if c.Email == "" {
		return apperr.NewValidationError("email is required")
	}
	if c.Location == "" {
		return apperr.NewValidationError("location is required")
	}
	return nil
}

// AdminAccount is a console login.
type AdminAccount struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
