package model

import "time"

// Occupancy is a per-night ownership claim on a room. The unique index on
// (room_id, night) is the final arbiter against double booking: whatever
// the pre-checks missed, the second insert for the same night fails.
type Occupancy struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	RoomID    string    `json:"room_id" bson:"room_id"`
	Night     time.Time `json:"night" bson:"night"`
	BookingID string    `json:"booking_id" bson:"booking_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NightsBetween expands a half-open [checkIn, checkOut) stay into the
// calendar nights it occupies, normalized to UTC midnight. The check-out
// night itself is not occupied.
func NightsBetween(checkIn, checkOut time.Time) []time.Time {
	start := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	var nights []time.Time
	for night := start; night.Before(end); night = night.AddDate(0, 0, 1) {
		nights = append(nights, night)
	}
	return nights
}
