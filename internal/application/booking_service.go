package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nbfilms/studio-api/internal/domain/booking"
	"github.com/nbfilms/studio-api/internal/domain/catalog"
	"github.com/nbfilms/studio-api/internal/events"
	"github.com/nbfilms/studio-api/internal/platform/apperr"
	"github.com/nbfilms/studio-api/internal/platform/kafka"
)

const eventSource = "studio-api"

// Notifier sends visitor-facing emails through the mail relay. Failures are
// reported to the caller but never roll back the underlying write.
type Notifier interface {
	SendBookingReceived(ctx context.Context, name, email, eventDate string) error
	SendStatusChanged(ctx context.Context, name, email, status, servicePackage string) error
}

// EventPublisher publishes CloudEvents to the message broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// SubmitBookingRequest is the public booking submission payload. A submitted
// status is accepted and ignored; new bookings always start pending.
type SubmitBookingRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Address        string `json:"address" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	ServicePackage string `json:"package" binding:"required"`
	EventDate      string `json:"eventDate" binding:"required"`
	Comments       string `json:"comments"`
	Status         string `json:"status"`
}

// BookingDTO is the transport representation of a booking.
type BookingDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	ServicePackage string    `json:"package"`
	EventDate      string    `json:"eventDate"`
	Comments       string    `json:"comments"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SubmitBookingResult reports a successful submission along with degraded
// side-effect outcomes.
type SubmitBookingResult struct {
	Booking        BookingDTO `json:"booking"`
	EmailSent      bool       `json:"emailSent"`
	PackageWarning string     `json:"packageWarning,omitempty"`
}

// BookingStats is the admin dashboard aggregate.
type BookingStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
	ByMonth  map[int]int64    `json:"byMonth"`
	Year     int              `json:"year"`
}

// BookingService orchestrates the booking lifecycle: submission with date
// exclusivity, admin status transitions, deletion and the derived views.
type BookingService struct {
	repo      booking.Repository
	guard     booking.ReservationGuard
	catalog   catalog.ServiceRepository
	feed      *booking.Feed
	notifier  Notifier
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewBookingService creates a BookingService.
func NewBookingService(
	repo booking.Repository,
	guard booking.ReservationGuard,
	catalogRepo catalog.ServiceRepository,
	feed *booking.Feed,
	notifier Notifier,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:      repo,
		guard:     guard,
		catalog:   catalogRepo,
		feed:      feed,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates and persists a new booking, holding its event date
// exclusively. The acknowledgment email and the lifecycle event are
// best-effort; their failure downgrades the response, never the write.
func (s *BookingService) Submit(ctx context.Context, req SubmitBookingRequest) (*SubmitBookingResult, error) {
	eventDate, err := booking.ParseDate(req.EventDate)
	if err != nil {
		return nil, apperr.NewValidationError("invalid event date: " + req.EventDate)
	}

	bk, err := booking.NewBooking(
		req.Name,
		req.Email,
		req.Address,
		req.Phone,
		req.ServicePackage,
		eventDate,
		req.Comments,
		s.now(),
	)
	if err != nil {
		return nil, err
	}

	reserved, err := s.guard.Reserve(ctx, bk.EventDate())
	if err != nil {
		// The unique index below still enforces exclusivity.
		s.logger.Warn("date reservation guard unavailable, relying on store constraint",
			zap.String("date", bk.DateKey()),
			zap.Error(err))
	} else if !reserved {
		return nil, apperr.NewDateConflictError(bk.DateKey())
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		if releaseErr := s.guard.Release(ctx, bk.EventDate()); releaseErr != nil {
			s.logger.Warn("failed to release date reservation",
				zap.String("date", bk.DateKey()),
				zap.Error(releaseErr))
		}
		return nil, err
	}

	result := &SubmitBookingResult{Booking: toBookingDTO(bk)}

	if exists, err := s.catalog.TitleExists(ctx, bk.ServicePackage()); err != nil {
		s.logger.Warn("failed to verify service package reference", zap.Error(err))
	} else if !exists {
		result.PackageWarning = "the referenced service package does not exist in the catalog"
	}

	s.publishEvent(ctx, events.BookingReceived, events.BookingReceivedEvent{
		BookingID:      bk.ID(),
		Name:           bk.Name(),
		Email:          bk.Email(),
		ServicePackage: bk.ServicePackage(),
		EventDate:      bk.DateKey(),
		OccurredAt:     s.now().UTC(),
	})

	if err := s.notifier.SendBookingReceived(ctx, bk.Name(), bk.Email(), bk.DateKey()); err != nil {
		s.logger.Warn("booking stored but acknowledgment email failed",
			zap.String("booking_id", bk.ID().String()),
			zap.Error(err))
		result.EmailSent = false
	} else {
		result.EmailSent = true
	}

	s.broadcast(ctx)
	return result, nil
}

// ChangeStatus transitions a booking through the status state machine and
// notifies the visitor of the change.
func (s *BookingService) ChangeStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*BookingDTO, error) {
	target, err := booking.ParseStatus(rawStatus)
	if err != nil {
		return nil, apperr.NewValidationError(err.Error())
	}

	bk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := bk.Status()

	if err := bk.ChangeStatus(target); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BookingStatusChanged, events.BookingStatusChangedEvent{
		BookingID:      bk.ID(),
		Name:           bk.Name(),
		Email:          bk.Email(),
		ServicePackage: bk.ServicePackage(),
		OldStatus:      string(oldStatus),
		NewStatus:      string(target),
		OccurredAt:     s.now().UTC(),
	})

	if err := s.notifier.SendStatusChanged(ctx, bk.Name(), bk.Email(), string(target), bk.ServicePackage()); err != nil {
		s.logger.Warn("status updated but notification email failed",
			zap.String("booking_id", id.String()),
			zap.String("status", string(target)),
			zap.Error(err))
	}

	s.broadcast(ctx)
	dto := toBookingDTO(bk)
	return &dto, nil
}

// Delete removes a booking and frees its event date.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	bk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.guard.Release(ctx, bk.EventDate()); err != nil {
		s.logger.Warn("failed to release date reservation after delete",
			zap.String("date", bk.DateKey()),
			zap.Error(err))
	}

	s.publishEvent(ctx, events.BookingDeleted, events.BookingDeletedEvent{
		BookingID:  id,
		EventDate:  bk.DateKey(),
		OccurredAt: s.now().UTC(),
	})

	s.broadcast(ctx)
	return nil
}

// List computes the filtered, sorted, paginated admin view.
func (s *BookingService) List(ctx context.Context, params booking.ListParams) (apperr.PaginatedResult[BookingDTO], error) {
	snapshot, err := s.repo.ListAll(ctx)
	if err != nil {
		return apperr.PaginatedResult[BookingDTO]{}, err
	}
	view := booking.ApplyListView(snapshot, params, s.now())
	return apperr.NewPaginatedResult(toBookingDTOs(view.Items), int64(view.Total), view.Page, booking.PageSize), nil
}

// BookedDates returns the sorted day keys of every claimed date.
func (s *BookingService) BookedDates(ctx context.Context) ([]string, error) {
	dates, err := s.repo.BookedDates(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(booking.AvailabilityIndex, len(dates))
	for _, d := range dates {
		idx[booking.DateKey(d)] = struct{}{}
	}
	return idx.Dates(), nil
}

// Stats computes the admin dashboard aggregates for one year.
func (s *BookingService) Stats(ctx context.Context, year int) (*BookingStats, error) {
	if year == 0 {
		year = s.now().Year()
	}

	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}

	monthCounts, err := s.repo.CountByMonth(ctx, year)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[int]int64, 12)
	for m := time.January; m <= time.December; m++ {
		byMonth[int(m)] = monthCounts[m]
	}

	return &BookingStats{
		Total:    total,
		ByStatus: byStatus,
		ByMonth:  byMonth,
		Year:     year,
	}, nil
}

// Subscribe registers a live-view subscriber. Each committed change delivers
// the full collection as DTOs; the returned function unsubscribes.
func (s *BookingService) Subscribe() (<-chan []BookingDTO, func()) {
	src, unsubscribe := s.feed.Subscribe(1)
	out := make(chan []BookingDTO, 1)
	go func() {
		defer close(out)
		for snapshot := range src {
			out <- toBookingDTOs(snapshot)
		}
	}()
	return out, unsubscribe
}

func (s *BookingService) broadcast(ctx context.Context) {
	if s.feed.SubscriberCount() == 0 {
		return
	}
	snapshot, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Warn("failed to load snapshot for live feed", zap.Error(err))
		return
	}
	s.feed.Publish(snapshot)
}

func (s *BookingService) publishEvent(ctx context.Context, eventType string, payload interface{}) {
	event, err := kafka.NewCloudEvent(eventSource, eventType, payload)
	if err != nil {
		s.logger.Error("failed to build event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := s.publisher.PublishEvent(ctx, events.TopicBookingEvents, event); err != nil {
		s.logger.Error("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

func toBookingDTO(b *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:             b.ID(),
		Name:           b.Name(),
		Email:          b.Email(),
		Address:        b.Address(),
		Phone:          b.Phone(),
		ServicePackage: b.ServicePackage(),
		EventDate:      b.DateKey(),
		Comments:       b.Comments(),
		Status:         string(b.Status()),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

func toBookingDTOs(snapshot []*booking.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(snapshot))
	for i, b := range snapshot {
		dtos[i] = toBookingDTO(b)
	}
	return dtos
}
