package model

import "time"

// BookingLock is a store-backed advisory lock. The _id is derived from the
// rooms and date range being reserved, so at most one non-expired lock per
// key can exist. Owner prevents a slow caller from releasing a lock that
// expired and was reacquired by someone else.
type BookingLock struct {
	ID        string    `json:"id" bson:"_id"`
	Owner     string    `json:"owner" bson:"owner"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Expired reports whether the lock is past its expiry at the given instant.
func (l *BookingLock) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}
