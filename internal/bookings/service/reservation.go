package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "resort/internal/bookings/errors"
	"resort/internal/bookings/repository"
	"resort/pkg/config"
	apperrors "resort/pkg/errors"
	"resort/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationStrategy persists a booking together with its per-night
// occupancy records, all-or-nothing. Exactly one of two concurrent
// reservations for an overlapping room/night may succeed; the loser gets a
// conflict and leaves no partial state behind.
type ReservationStrategy interface {
	Reserve(ctx context.Context, booking *model.Booking, nights []time.Time) error
}

// SelectReservationStrategy probes the deployment once at startup and picks
// the transactional path when multi-document transactions are available,
// the lock-based path otherwise.
func SelectReservationStrategy(
	cfg *config.Config,
	bookings repository.BookingRepository,
	occupancies repository.OccupancyRepository,
	locks repository.LockRepository,
) ReservationStrategy {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	if bookings.TransactionsSupported(ctx) {
		cfg.Log.Info("Reservation strategy selected", "strategy", "transactional")
		return NewTransactionalReservation(bookings, occupancies)
	}
	cfg.Log.Info("Reservation strategy selected", "strategy", "locked")
	return NewLockedReservation(cfg, bookings, occupancies, locks)
}

// TransactionalReservation inserts the booking and its occupancies in one
// Mongo transaction. A uniqueness violation on any occupancy aborts the
// whole transaction, so there is nothing to compensate.
type TransactionalReservation struct {
	bookings    repository.BookingRepository
	occupancies repository.OccupancyRepository
}

func NewTransactionalReservation(
	bookings repository.BookingRepository,
	occupancies repository.OccupancyRepository,
) *TransactionalReservation {
	return &TransactionalReservation{
		bookings:    bookings,
		occupancies: occupancies,
	}
}

func (s *TransactionalReservation) Reserve(ctx context.Context, booking *model.Booking, nights []time.Time) error {
	return s.bookings.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.bookings.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		if err := s.occupancies.InsertForBooking(sessCtx, booking.ID, booking.AllocatedRooms, nights); err != nil {
			if errors.Is(err, bookingserrors.ErrNightTaken) {
				return apperrors.Conflict("One or more rooms were just booked for the selected dates. Please try again.")
			}
			return apperrors.Internal("Failed to reserve nights", err)
		}
		return nil
	})
}

// LockedReservation is the fallback for deployments without transactions.
// It serializes writers on a store-backed lock keyed by rooms+range,
// re-checks overlap inside the critical section, and compensates by
// deleting the booking if the occupancy insert still loses the race.
type LockedReservation struct {
	cfg         *config.Config
	bookings    repository.BookingRepository
	occupancies repository.OccupancyRepository
	locks       repository.LockRepository
}

func NewLockedReservation(
	cfg *config.Config,
	bookings repository.BookingRepository,
	occupancies repository.OccupancyRepository,
	locks repository.LockRepository,
) *LockedReservation {
	return &LockedReservation{
		cfg:         cfg,
		bookings:    bookings,
		occupancies: occupancies,
		locks:       locks,
	}
}

func (s *LockedReservation) Reserve(ctx context.Context, booking *model.Booking, nights []time.Time) error {
	key := repository.LockKey(booking.AllocatedRooms, booking.CheckIn, booking.CheckOut)
	owner := uuid.NewString()

	err := s.locks.AcquireWithRetry(ctx, key, owner,
		s.cfg.LockTTL, s.cfg.LockRetryDelay, s.cfg.LockAcquireTimeout)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			return apperrors.Conflict("The selected rooms are being booked by another request. Please try again.")
		}
		return apperrors.Internal("Failed to acquire reservation lock", err)
	}
	defer func() {
		if releaseErr := s.locks.Release(ctx, key, owner); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release reservation lock", "key", key, "error", releaseErr)
		}
	}()

	// Close the window between the caller's availability read and this
	// critical section.
	for _, roomID := range booking.AllocatedRooms {
		busy, err := s.bookings.IsRoomBusy(ctx, roomID, booking.CheckIn, booking.CheckOut)
		if err != nil {
			return apperrors.Internal("Failed to re-check availability", err)
		}
		if busy {
			return apperrors.Conflict("One or more rooms were just booked for the selected dates. Please try again.")
		}
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return apperrors.Internal("Failed to create booking", err)
	}

	if err := s.occupancies.InsertForBooking(ctx, booking.ID, booking.AllocatedRooms, nights); err != nil {
		// A concurrent writer won the gap between the overlap re-check and
		// the insert. The rollback is mandatory: no orphaned booking may
		// survive this path.
		if deleteErr := s.bookings.Delete(ctx, booking.ID); deleteErr != nil {
			s.cfg.Log.Error("Failed to roll back booking after occupancy conflict",
				"booking_id", booking.ID, "error", deleteErr)
		}
		if occErr := s.occupancies.DeleteByBooking(ctx, booking.ID); occErr != nil {
			s.cfg.Log.Error("Failed to roll back partial occupancies",
				"booking_id", booking.ID, "error", occErr)
		}

		if errors.Is(err, bookingserrors.ErrNightTaken) {
			return apperrors.Conflict("One or more rooms were just booked for the selected dates. Please try again.")
		}
		return apperrors.Internal("Failed to reserve nights", err)
	}

	return nil
}
