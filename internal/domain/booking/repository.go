package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for bookings.
type Repository interface {
	// Save persists a new booking. It fails with a conflict error when the
	// event date is already taken (unique constraint).
	Save(ctx context.Context, b *Booking) error

	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// ListAll retrieves the full booking collection.
	ListAll(ctx context.Context) ([]*Booking, error)

	// UpdateStatus partially updates one booking's status field.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// Delete removes the booking. Deleting a nonexistent id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// BookedDates returns the event dates of all bookings.
	BookedDates(ctx context.Context) ([]time.Time, error)

	// CountByStatus returns booking counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// CountByMonth returns booking counts per month for the given year.
	CountByMonth(ctx context.Context, year int) (map[time.Month]int64, error)
}

// ReservationGuard is the only-if-absent event date reservation. Reserve
// returns false when another submission already holds the date. It is a fast
// pre-commit guard; the repository's unique constraint is the correctness
// mechanism.
type ReservationGuard interface {
	Reserve(ctx context.Context, date time.Time) (bool, error)
	Release(ctx context.Context, date time.Time) error
}
