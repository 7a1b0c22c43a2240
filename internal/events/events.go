// Package events defines the Kafka topics and event payloads shared by the
// studio API and the mailer.
package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicBookingEvents carries all booking lifecycle events.
const TopicBookingEvents = "booking.events"

// Event types published on TopicBookingEvents.
const (
	BookingReceived      = "booking.received"
	BookingStatusChanged = "booking.status_changed"
	BookingDeleted       = "booking.deleted"
	RatingSubmitted      = "rating.submitted"
)

// BookingReceivedEvent is published when a visitor submits a booking.
type BookingReceivedEvent struct {
	BookingID      uuid.UUID `json:"booking_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ServicePackage string    `json:"service_package"`
	EventDate      string    `json:"event_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is published when an admin changes a booking status.
type BookingStatusChangedEvent struct {
	BookingID      uuid.UUID `json:"booking_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ServicePackage string    `json:"service_package"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// BookingDeletedEvent is published when an admin deletes a booking.
type BookingDeletedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	EventDate  string    `json:"event_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RatingSubmittedEvent is published when a visitor rates a completed booking.
type RatingSubmittedEvent struct {
	RatingID       uuid.UUID `json:"rating_id"`
	BookingID      string    `json:"booking_id"`
	ServicePackage string    `json:"service_package"`
	Stars          int       `json:"stars"`
	OccurredAt     time.Time `json:"occurred_at"`
}
