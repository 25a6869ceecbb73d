package model

// Shift is a named time window cabs run on, e.g. "10AM to 7PM". Shifts are
// seeded reference data and referenced from bookings by id.
type Shift struct {
	ID        int    `json:"id" bson:"_id"`
	ShiftTime string `json:"shift_time" bson:"shift_time" validate:"required,max=50"`
}

// NodalPoint is a named pickup/drop-off location referenced from bookings
// by id. Location names are unique.
type NodalPoint struct {
	ID           int    `json:"id" bson:"_id"`
	LocationName string `json:"location_name" bson:"location_name" validate:"required,min=2,max=100"`
}
