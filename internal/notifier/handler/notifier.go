package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"cabroster/pkg/kafka"
	"cabroster/pkg/logger"
	"cabroster/pkg/model"
)

// Notifier turns booking and user events into notification log lines.
// Delivery to an actual channel (mail, SMS) hangs off this handler; for
// now the structured log is the channel.
type Notifier struct {
	log *logger.Logger
}

func NewNotifier(log *logger.Logger) *Notifier {
	return &Notifier{log: log}
}

// Handle is the kafka.MessageHandler wired into the consumers. Unknown
// event types are acknowledged and skipped so a schema addition never
// poisons the topic.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	eventType := msg.Headers[kafka.HeaderEventType]

	switch eventType {
	case model.EventBookingCreated, model.EventBookingStatusChanged:
		return n.handleBookingEvent(eventType, msg)
	case model.EventUserRegistered, model.EventUserApproved, model.EventUserRejected:
		return n.handleUserEvent(eventType, msg)
	default:
		n.log.Warn("Skipping unknown event type",
			"event_type", eventType,
			"topic", msg.Topic,
			"event_id", msg.Headers[kafka.HeaderEventID],
		)
		return nil
	}
}

func (n *Notifier) handleBookingEvent(eventType string, msg kafka.Message) error {
	var event model.BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to decode booking event: %w", err)
	}

	n.log.Info("Notification: booking update",
		"event_type", eventType,
		"booking_id", event.BookingID,
		"user_id", event.UserID,
		"shift_id", event.ShiftID,
		"nodal_point_id", event.NodalPointID,
		"start_date", event.StartDate,
		"end_date", event.EndDate,
		"status", event.Status,
	)
	return nil
}

func (n *Notifier) handleUserEvent(eventType string, msg kafka.Message) error {
	var event model.UserEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to decode user event: %w", err)
	}

	n.log.Info("Notification: account update",
		"event_type", eventType,
		"user_id", event.UserID,
		"email", event.Email,
		"name", event.Name,
	)
	return nil
}
