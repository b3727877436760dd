package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names shared by the booking core.
const (
	RoomsCollection       = "Rooms"
	ProgramsCollection    = "Programs"
	BookingsCollection    = "Bookings"
	OccupanciesCollection = "Occupancies"
	LocksCollection       = "Booking_locks"
)

// withTimeout wraps the context with a timeout unless the call is already
// running inside a transaction. A SessionContext cannot be wrapped without
// breaking transaction semantics, so it is returned as-is with a no-op
// cancel.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	if remaining := time.Until(deadline); remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}
	return context.WithTimeout(ctx, timeout)
}
