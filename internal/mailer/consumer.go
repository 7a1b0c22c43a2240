package mailer

import (
	"context"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/nbfilms/studio-api/internal/events"
	"github.com/nbfilms/studio-api/internal/platform/kafka"
)

// EventConsumer listens for booking lifecycle events and sends internal
// notices to the studio inbox. Visitor-facing emails go through the HTTP
// relay; this path only keeps the studio team informed.
type EventConsumer struct {
	consumer    *kafka.Consumer
	sender      MailSender
	studioInbox string
	logger      *zap.Logger
}

// NewEventConsumer creates an EventConsumer over the given Kafka consumer.
func NewEventConsumer(consumer *kafka.Consumer, sender MailSender, studioInbox string, logger *zap.Logger) *EventConsumer {
	return &EventConsumer{
		consumer:    consumer,
		sender:      sender,
		studioInbox: studioInbox,
		logger:      logger,
	}
}

// Run consumes until the context is canceled.
func (ec *EventConsumer) Run(ctx context.Context) error {
	return ec.consumer.Consume(ctx, ec.handleMessage)
}

// Close closes the underlying consumer.
func (ec *EventConsumer) Close() error {
	return ec.consumer.Close()
}

// handleMessage dispatches one event. Malformed messages are logged and
// committed; retrying them cannot succeed.
func (ec *EventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	event, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		ec.logger.Warn("skipping malformed event", zap.Error(err))
		return nil
	}

	switch event.Type {
	case events.BookingReceived:
		var payload events.BookingReceivedEvent
		if err := event.ParseData(&payload); err != nil {
			ec.logger.Warn("skipping malformed booking.received payload", zap.Error(err))
			return nil
		}
		return ec.notify(
			"New booking request",
			fmt.Sprintf("%s (%s) requested the %s package for %s.",
				payload.Name, payload.Email, payload.ServicePackage, payload.EventDate),
		)

	case events.BookingStatusChanged:
		var payload events.BookingStatusChangedEvent
		if err := event.ParseData(&payload); err != nil {
			ec.logger.Warn("skipping malformed booking.status_changed payload", zap.Error(err))
			return nil
		}
		return ec.notify(
			"Booking status changed",
			fmt.Sprintf("Booking %s (%s, %s package) moved from %s to %s.",
				payload.BookingID, payload.Name, payload.ServicePackage, payload.OldStatus, payload.NewStatus),
		)

	case events.BookingDeleted:
		var payload events.BookingDeletedEvent
		if err := event.ParseData(&payload); err != nil {
			ec.logger.Warn("skipping malformed booking.deleted payload", zap.Error(err))
			return nil
		}
		return ec.notify(
			"Booking deleted",
			fmt.Sprintf("Booking %s for %s was deleted; the date is free again.",
				payload.BookingID, payload.EventDate),
		)

	case events.RatingSubmitted:
		var payload events.RatingSubmittedEvent
		if err := event.ParseData(&payload); err != nil {
			ec.logger.Warn("skipping malformed rating.submitted payload", zap.Error(err))
			return nil
		}
		return ec.notify(
			"New rating",
			fmt.Sprintf("The %s package received a %d-star rating.",
				payload.ServicePackage, payload.Stars),
		)

	default:
		ec.logger.Debug("ignoring event", zap.String("type", event.Type))
		return nil
	}
}

func (ec *EventConsumer) notify(subject, body string) error {
	msg := AdminNoticeMessage(ec.studioInbox, subject, body)
	if err := ec.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send internal notice: %w", err)
	}
	return nil
}
