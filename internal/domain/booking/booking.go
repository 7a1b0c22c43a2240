package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// DateLayout is the day-granularity key format used everywhere a calendar
// date is compared or stored.
const DateLayout = "2006-01-02"

// Booking is the aggregate root for the booking domain. A booking reserves a
// service package for exactly one calendar date.
type Booking struct {
	id             uuid.UUID
	name           string
	email          string
	address        string
	phone          string
	servicePackage string
	eventDate      time.Time
	comments       string
	status         Status
	version        int64
	createdAt      time.Time
	updatedAt      time.Time
}

// NormalizeDate truncates a timestamp to UTC midnight so date comparisons are
// day-granular regardless of the submitted time or zone.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey formats a date as its comparable day-granularity key.
func DateKey(t time.Time) string {
	return NormalizeDate(t).Format(DateLayout)
}

// NewBooking creates a new Booking with status forced to pending. Required
// fields must be non-empty and the event date must not be in the past
// relative to now.
func NewBooking(name, email, address, phone, servicePackage string, eventDate time.Time, comments string, now time.Time) (*Booking, error) {
	if name == "" {
		return nil, apperr.NewValidationError("name is required")
	}
	if email == "" {
		return nil, apperr.NewValidationError("email is required")
	}
	if address == "" {
		return nil, apperr.NewValidationError("address is required")
	}
	if phone == "" {
		return nil, apperr.NewValidationError("phone is required")
	}
	if servicePackage == "" {
		return nil, apperr.NewValidationError("package is required")
	}
	if eventDate.IsZero() {
		return nil, apperr.NewValidationError("event date is required")
	}

	date := NormalizeDate(eventDate)
	if date.Before(NormalizeDate(now)) {
		return nil, apperr.NewValidationError("event date must not be in the past")
	}

	nowUTC := now.UTC()
	return &Booking{
		id:             uuid.New(),
		name:           name,
		email:          email,
		address:        address,
		phone:          phone,
		servicePackage: servicePackage,
		eventDate:      date,
		comments:       comments,
		status:         StatusPending,
		version:        1,
		createdAt:      nowUTC,
		updatedAt:      nowUTC,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name, email, address, phone, servicePackage string,
	eventDate time.Time,
	comments string,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		name:           name,
		email:          email,
		address:        address,
		phone:          phone,
		servicePackage: servicePackage,
		eventDate:      NormalizeDate(eventDate),
		comments:       comments,
		status:         status,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// Name returns the visitor's name.
func (b *Booking) Name() string { return b.name }

// Email returns the visitor's email address.
func (b *Booking) Email() string { return b.email }

// Address returns the visitor's address.
func (b *Booking) Address() string { return b.address }

// Phone returns the visitor's phone number.
func (b *Booking) Phone() string { return b.phone }

// ServicePackage returns the display title of the booked service package.
// This is a loose reference, not a foreign key.
func (b *Booking) ServicePackage() string { return b.servicePackage }

// EventDate returns the reserved calendar date at UTC midnight.
func (b *Booking) EventDate() time.Time { return b.eventDate }

// DateKey returns the booking's day-granularity date key.
func (b *Booking) DateKey() string { return DateKey(b.eventDate) }

// Comments returns the optional free-text comments.
func (b *Booking) Comments() string { return b.comments }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// ChangeStatus transitions the booking to the target status, enforcing the
// state machine.
func (b *Booking) ChangeStatus(target Status) error {
	if !target.IsValid() {
		return apperr.NewValidationError("invalid booking status: " + string(target))
	}
	if !b.status.CanTransitionTo(target) {
		return apperr.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// MatchesSearch reports whether the query is a case-insensitive substring of
// the booking's name or email.
func (b *Booking) MatchesSearch(query string) bool {
	if query == "" {
		return true
	}
	return containsFold(b.name, query) || containsFold(b.email, query)
}
