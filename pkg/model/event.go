package model

import "time"

// Event types published to Kafka.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventUserRegistered       = "user.registered"
	EventUserApproved         = "user.approved"
	EventUserRejected         = "user.rejected"
)

// Kafka topics. Each topic has a sibling DLQ topic for poison messages.
const (
	TopicBookingEvents    = "booking-events"
	TopicBookingEventsDLQ = "booking-events-dlq"
	TopicUserEvents       = "user-events"
	TopicUserEventsDLQ    = "user-events-dlq"
)

// BookingEvent is the payload for booking.* events.
type BookingEvent struct {
	BookingID    string    `json:"booking_id"`
	UserID       string    `json:"user_id"`
	ShiftID      int       `json:"shift_id"`
	NodalPointID int       `json:"nodal_point_id"`
	BookingDate  string    `json:"booking_date"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// UserEvent is the payload for user.* events.
type UserEvent struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
