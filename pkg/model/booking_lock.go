package model

import "time"

// BookingLock is an advisory lock serializing concurrent booking creation
// for one (user, shift, nodal point) slot. The unique _id insert is the
// lock acquisition; ExpiresAt lets a TTL index reap abandoned locks.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
