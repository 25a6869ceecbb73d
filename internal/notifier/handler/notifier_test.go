package handler

import (
	"context"
	"encoding/json"
	"testing"

	"cabroster/pkg/kafka"
	"cabroster/pkg/logger"
	"cabroster/pkg/model"
)

func newTestNotifier(t *testing.T) *Notifier {
	t.Helper()
	return NewNotifier(logger.New(logger.Config{Level: logger.ERROR}))
}

func TestHandleBookingEvent(t *testing.T) {
	payload, err := json.Marshal(model.BookingEvent{
		BookingID: "b-1",
		UserID:    "u-1",
		Status:    "Booked",
	})
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}

	msg := kafka.NewMessage().
		WithKey("b-1").
		WithRawValue(payload).
		WithEventType(model.EventBookingCreated).
		Build()

	if err := newTestNotifier(t).Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleUserEvent(t *testing.T) {
	payload, err := json.Marshal(model.UserEvent{UserID: "u-1", Email: "asha@example.com"})
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}

	msg := kafka.NewMessage().
		WithKey("u-1").
		WithRawValue(payload).
		WithEventType(model.EventUserApproved).
		Build()

	if err := newTestNotifier(t).Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleMalformedPayloadFails(t *testing.T) {
	msg := kafka.NewMessage().
		WithKey("b-1").
		WithRawValue([]byte("{not json")).
		WithEventType(model.EventBookingCreated).
		Build()

	if err := newTestNotifier(t).Handle(context.Background(), msg); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestHandleUnknownEventTypeIsAcknowledged(t *testing.T) {
	msg := kafka.NewMessage().
		WithKey("x").
		WithRawValue([]byte("{}")).
		WithEventType("something.else").
		Build()

	if err := newTestNotifier(t).Handle(context.Background(), msg); err != nil {
		t.Fatalf("unknown event types must not error, got: %v", err)
	}
}
