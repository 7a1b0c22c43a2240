package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/nbfilms/studio-api/internal/domain/booking"
	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// BookingModel is the GORM model for the bookings table. The unique index on
// EventDate is the correctness mechanism behind double-booking prevention.
type BookingModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"not null;size:200"`
	Email          string    `gorm:"not null;size:320"`
	Address        string    `gorm:"not null;size:500"`
	Phone          string    `gorm:"not null;size:50"`
	ServicePackage string    `gorm:"not null;size:200;index"`
	EventDate      time.Time `gorm:"type:date;uniqueIndex;not null"`
	Comments       string    `gorm:"size:2000"`
	Status         string    `gorm:"not null;size:20;index"`
	Version        int64     `gorm:"not null;default:1"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking
// Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking. A duplicate event date surfaces as a date
// conflict.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.NewDateConflictError(b.DateKey())
		}
		return apperr.NewStoreWriteError("create booking", err)
	}
	return nil
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// ListAll retrieves the full booking collection, ordered by event date.
func (r *GormBookingRepository) ListAll(ctx context.Context) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).Order("event_date ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = b
	}
	return bookings, nil
}

// UpdateStatus partially updates one booking's status field.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status bookingDomain.Status) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return apperr.NewStoreWriteError("update booking status", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFoundError("booking", id.String())
	}
	return nil
}

// Delete removes the booking. Deleting a nonexistent id is not an error.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{}).Error; err != nil {
		return apperr.NewStoreWriteError("delete booking", err)
	}
	return nil
}

// BookedDates returns the event dates of all bookings.
func (r *GormBookingRepository) BookedDates(ctx context.Context) ([]time.Time, error) {
	var dates []time.Time
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Order("event_date ASC").
		Pluck("event_date", &dates).Error; err != nil {
		return nil, fmt.Errorf("failed to list booked dates: %w", err)
	}
	return dates, nil
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// CountByMonth returns booking counts per month for the given year.
func (r *GormBookingRepository) CountByMonth(ctx context.Context, year int) (map[time.Month]int64, error) {
	type monthCount struct {
		Month int
		Count int64
	}
	var results []monthCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("EXTRACT(MONTH FROM event_date)::int as month, count(*) as count").
		Where("EXTRACT(YEAR FROM event_date) = ?", year).
		Group("month").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by month: %w", err)
	}

	counts := make(map[time.Month]int64)
	for _, mc := range results {
		counts[time.Month(mc.Month)] = mc.Count
	}
	return counts, nil
}

// --- Conversion helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:             b.ID(),
		Name:           b.Name(),
		Email:          b.Email(),
		Address:        b.Address(),
		Phone:          b.Phone(),
		ServicePackage: b.ServicePackage(),
		EventDate:      b.EventDate(),
		Comments:       b.Comments(),
		Status:         string(b.Status()),
		Version:        b.Version(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(
		m.ID,
		m.Name,
		m.Email,
		m.Address,
		m.Phone,
		m.ServicePackage,
		m.EventDate,
		m.Comments,
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
