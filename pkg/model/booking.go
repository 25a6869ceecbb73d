package model

import (
	"time"
)

// Booking is one reserved cab-day for a user. Multi-date requests produce
// one record per calendar date; date-range requests produce a single record
// whose BookingDate equals StartDate.
type Booking struct {
	ID           string        `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       string        `json:"user_id" bson:"user_id" validate:"required"`
	ShiftID      int           `json:"shift_id" bson:"shift_id" validate:"required,gt=0"`
	NodalPointID int           `json:"nodal_point_id" bson:"nodal_point_id" validate:"required,gt=0"`
	BookingDate  time.Time     `json:"booking_date" bson:"booking_date"`
	StartDate    time.Time     `json:"start_date" bson:"start_date"`
	EndDate      time.Time     `json:"end_date" bson:"end_date"`
	Status       BookingStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}

// BookingRequest is the multi-date booking payload: one booking per listed
// date, all sharing the surrounding start/end range.
type BookingRequest struct {
	UserID       string `json:"user_id"`
	BookingDates []Date `json:"booking_dates"`
	ShiftID      int    `json:"shift_id"`
	NodalPointID int    `json:"nodal_point_id"`
	StartDate    Date   `json:"start_date"`
	EndDate      Date   `json:"end_date"`
}

// DateRangeRequest is the range booking payload: a single booking covering
// [StartDate, EndDate].
type DateRangeRequest struct {
	UserID       string `json:"user_id"`
	StartDate    Date   `json:"start_date"`
	EndDate      Date   `json:"end_date"`
	ShiftID      int    `json:"shift_id"`
	NodalPointID int    `json:"nodal_point_id"`
}

// BookingView is a booking joined with its display labels for listing and
// status lookups.
type BookingView struct {
	ID         string `json:"id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Shift      string `json:"shift"`
	Status     string `json:"status"`
	User       string `json:"user"`
	NodalPoint string `json:"nodal_point"`
}
