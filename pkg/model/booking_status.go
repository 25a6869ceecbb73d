package model

// BookingStatus represents the current state of a cab booking.
type BookingStatus string

const (
	StatusBooked   BookingStatus = "Booked"
	StatusApproved BookingStatus = "Approved"
	StatusRejected BookingStatus = "Rejected"
)

// validTransitions defines the state machine for booking status changes.
// A booking starts as Booked; an administrator moves it to Approved or
// Rejected, both of which are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusBooked:   {StatusApproved, StatusRejected},
	StatusApproved: {},
	StatusRejected: {},
}

// IsValid returns true if the status is a recognized booking status.
// Matching is case-sensitive.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the
// target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a raw string to a BookingStatus. The empty
// second return reports an unrecognized value.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", false
	}
	return status, true
}
