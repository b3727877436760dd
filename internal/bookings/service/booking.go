package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"resort/internal/bookings/allocator"
	"resort/internal/bookings/capacity"
	bookingserrors "resort/internal/bookings/errors"
	"resort/internal/bookings/repository"
	"resort/internal/bookings/validator"
	"resort/pkg/config"
	apperrors "resort/pkg/errors"
	"resort/pkg/model"
)

// EventEmitter is the slice of the event publisher the service needs. A nil
// emitter disables publishing entirely.
type EventEmitter interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, req *model.BookingRequest) (*model.BookingResult, error)
	GetBookingByID(ctx context.Context, id string) (*model.Booking, error)
	GetAllBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetBookingsByGuestEmail(ctx context.Context, email string) ([]*model.Booking, error)
	CancelBooking(ctx context.Context, id string) error
	DeleteBooking(ctx context.Context, id string) error
	AvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]*model.Room, error)
	RoomByID(ctx context.Context, idOrSlug string) (*model.Room, error)
}

type bookingService struct {
	cfg         *config.Config
	rooms       repository.RoomRepository
	programs    repository.ProgramRepository
	bookings    repository.BookingRepository
	occupancies repository.OccupancyRepository
	validator   *validator.BookingValidator
	strategy    ReservationStrategy
	events      EventEmitter
}

func NewBookingService(
	cfg *config.Config,
	rooms repository.RoomRepository,
	programs repository.ProgramRepository,
	bookings repository.BookingRepository,
	occupancies repository.OccupancyRepository,
	bookingValidator *validator.BookingValidator,
	strategy ReservationStrategy,
	events EventEmitter,
) BookingService {
	return &bookingService{
		cfg:         cfg,
		rooms:       rooms,
		programs:    programs,
		bookings:    bookings,
		occupancies: occupancies,
		validator:   bookingValidator,
		strategy:    strategy,
		events:      events,
	}
}

// CreateBooking runs the full reservation pipeline: validate, resolve the
// busy set for the requested range, honor explicit room selections or
// allocate, price, persist atomically via the configured strategy, then
// emit the created event best-effort.
func (s *bookingService) CreateBooking(ctx context.Context, req *model.BookingRequest) (*model.BookingResult, error) {
	stay, err := s.validator.Validate(req)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, apperrors.Validation("Invalid booking request", map[string]any{"errors": validationErrs})
		}
		return nil, apperrors.Validation("Invalid booking request", map[string]any{"error": err.Error()})
	}

	busy, err := s.bookings.BusyRoomIDs(ctx, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return nil, apperrors.Internal("Failed to check room availability", err)
	}

	allocated, err := s.resolveRooms(ctx, req, stay, busy)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.price(ctx, req, stay, allocated)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	}

	booking := &model.Booking{
		Reference:        newReference(),
		GuestName:        req.GuestName,
		GuestEmail:       req.GuestEmail,
		GuestPhone:       req.GuestPhone,
		Guests:           stay.Guests,
		CheckIn:          stay.CheckIn,
		CheckOut:         stay.CheckOut,
		Nights:           stay.Nights,
		SelectedRooms:    req.SelectedRoomIDs,
		AllocatedRooms:   allocated,
		ExtraBedding:     req.AllowExtraBeds,
		ExtraBedQuantity: req.ExtraBedQuantity,
		SelectedPrograms: req.SelectedProgramIDs,
		Status:           status,
		PriceBreakdown:   breakdown,
	}

	nights := model.NightsBetween(stay.CheckIn, stay.CheckOut)
	if err := s.strategy.Reserve(ctx, booking, nights); err != nil {
		return nil, err
	}

	s.emitCreated(booking)

	return &model.BookingResult{
		ID:             booking.ID,
		Reference:      booking.Reference,
		Status:         booking.Status,
		AllocatedRooms: booking.AllocatedRooms,
		PriceBreakdown: booking.PriceBreakdown,
	}, nil
}

// resolveRooms verifies explicit selections against existence and the busy
// set, or falls back to automatic allocation over the free inventory.
func (s *bookingService) resolveRooms(ctx context.Context, req *model.BookingRequest, stay *validator.Stay, busy []string) ([]string, error) {
	if len(req.SelectedRoomIDs) > 0 {
		busySet := make(map[string]struct{}, len(busy))
		for _, id := range busy {
			busySet[id] = struct{}{}
		}
		for _, id := range req.SelectedRoomIDs {
			if _, err := s.rooms.FindByID(ctx, id); err != nil {
				if errors.Is(err, bookingserrors.ErrRoomNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
					return nil, apperrors.InvalidInput(fmt.Sprintf("Room %s does not exist", id))
				}
				return nil, apperrors.Internal("Failed to verify selected rooms", err)
			}
			if _, taken := busySet[id]; taken {
				return nil, apperrors.InvalidInput(fmt.Sprintf("Room %s is not available for the selected dates", id))
			}
		}
		return req.SelectedRoomIDs, nil
	}

	candidates, err := s.rooms.FindAvailable(ctx, busy)
	if err != nil {
		return nil, apperrors.Internal("Failed to load available rooms", err)
	}

	allocated := allocator.Allocate(candidates, stay.Guests, req.AllowExtraBeds, req.PreferredRoomTypes, s.cfg.MaxGroupSize)
	if len(allocated) == 0 {
		return nil, apperrors.NoAvailability("Not enough rooms available for the requested guests and dates")
	}
	return allocated, nil
}

// price builds the breakdown: nightly rate times nights per room (same-day
// stays are charged one night), flat program prices, then tax on the
// combined subtotal.
func (s *bookingService) price(ctx context.Context, req *model.BookingRequest, stay *validator.Stay, allocated []string) (*model.PriceBreakdown, error) {
	rooms, err := s.rooms.FindByIDs(ctx, allocated)
	if err != nil {
		return nil, apperrors.Internal("Failed to load rooms for pricing", err)
	}

	chargeNights := stay.Nights
	if chargeNights < 1 {
		chargeNights = 1
	}

	var roomsSubtotal float64
	perRoom := make([]model.RoomCharge, 0, len(rooms))
	for _, room := range rooms {
		rate := room.NightlyRate()
		roomsSubtotal += rate * float64(chargeNights)
		perRoom = append(perRoom, model.RoomCharge{
			RoomID:        room.ID,
			PricePerNight: rate,
		})
	}

	var programsSubtotal float64
	var programCharges []model.ProgramCharge
	for _, id := range req.SelectedProgramIDs {
		program, err := s.programs.FindByID(ctx, id)
		if err != nil {
			// Unknown program ids are dropped from the quote rather than
			// failing the booking.
			s.cfg.Log.Warn("Skipping unknown program in booking", "program_id", id, "error", err)
			continue
		}
		price := programPrice(program)
		programsSubtotal += price
		programCharges = append(programCharges, model.ProgramCharge{
			ProgramID: id,
			Title:     program.DisplayTitle(),
			Price:     price,
		})
	}

	subtotal := roomsSubtotal + programsSubtotal
	tax := round2(subtotal * s.cfg.TaxRate)

	return &model.PriceBreakdown{
		RoomsSubtotal:    round2(roomsSubtotal),
		ProgramsSubtotal: round2(programsSubtotal),
		Tax:              tax,
		Total:            round2(subtotal + tax),
		PerRoom:          perRoom,
		Programs:         programCharges,
	}, nil
}

// emitCreated publishes the booking-created event. Emission is best-effort:
// a broker failure never fails the committed booking.
func (s *bookingService) emitCreated(booking *model.Booking) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.EventPublishTimeout)
	defer cancel()

	if err := s.events.BookingCreated(ctx, booking); err != nil {
		s.cfg.Log.Warn("Failed to publish booking created event",
			"booking_id", booking.ID, "reference", booking.Reference, "error", err)
	}
}

func (s *bookingService) GetBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking id")
		}
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to fetch booking", err)
	}
	return booking, nil
}

// GetAllBookings pages through bookings and returns the total count
// alongside, fetched concurrently.
func (s *bookingService) GetAllBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	type findResult struct {
		bookings []*model.Booking
		err      error
	}
	type countResult struct {
		total int64
		err   error
	}

	findCh := make(chan findResult, 1)
	countCh := make(chan countResult, 1)

	go func() {
		bookings, err := s.bookings.FindAll(ctx, limit, offset)
		findCh <- findResult{bookings: bookings, err: err}
	}()
	go func() {
		total, err := s.bookings.Count(ctx)
		countCh <- countResult{total: total, err: err}
	}()

	find := <-findCh
	count := <-countCh

	if find.err != nil {
		return nil, 0, apperrors.Internal("Failed to fetch bookings", find.err)
	}
	if count.err != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", count.err)
	}
	return find.bookings, count.total, nil
}

func (s *bookingService) GetBookingsByGuestEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	bookings, err := s.bookings.FindByGuestEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch bookings by guest", err)
	}
	return bookings, nil
}

// CancelBooking flips the booking to cancelled and frees its nights so the
// rooms become allocatable again.
func (s *bookingService) CancelBooking(ctx context.Context, id string) error {
	booking, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status == model.StatusCancelled {
		return nil
	}

	if err := s.bookings.UpdateStatus(ctx, id, model.StatusCancelled); err != nil {
		return apperrors.Internal("Failed to cancel booking", err)
	}
	if err := s.occupancies.DeleteByBooking(ctx, id); err != nil {
		return apperrors.Internal("Failed to release booked nights", err)
	}
	return nil
}

// DeleteBooking removes the booking document and its occupancy records.
func (s *bookingService) DeleteBooking(ctx context.Context, id string) error {
	if _, err := s.GetBookingByID(ctx, id); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return apperrors.Internal("Failed to delete booking", err)
	}
	if err := s.occupancies.DeleteByBooking(ctx, id); err != nil {
		return apperrors.Internal("Failed to release booked nights", err)
	}
	return nil
}

// AvailableRooms lists rooms open for the given range. Zero times list the
// whole sellable inventory.
func (s *bookingService) AvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]*model.Room, error) {
	var busy []string
	if !checkIn.IsZero() && !checkOut.IsZero() {
		if !checkOut.After(checkIn) {
			return nil, apperrors.InvalidInput("availableEnd must be after availableStart")
		}
		var err error
		busy, err = s.bookings.BusyRoomIDs(ctx, checkIn, checkOut)
		if err != nil {
			return nil, apperrors.Internal("Failed to check room availability", err)
		}
	}

	rooms, err := s.rooms.FindAvailable(ctx, busy)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch rooms", err)
	}
	return rooms, nil
}

// RoomByID resolves a room by its store id, falling back to slug lookup for
// human-readable identifiers.
func (s *bookingService) RoomByID(ctx context.Context, idOrSlug string) (*model.Room, error) {
	room, err := s.rooms.FindByID(ctx, idOrSlug)
	if err == nil {
		return room, nil
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		room, err = s.rooms.FindBySlug(ctx, idOrSlug)
		if err == nil {
			return room, nil
		}
	}
	if errors.Is(err, bookingserrors.ErrRoomNotFound) {
		return nil, apperrors.NotFoundWithID("Room", idOrSlug)
	}
	return nil, apperrors.Internal("Failed to fetch room", err)
}

// newReference builds a human-readable booking reference, e.g.
// RB-20260831142233-4821. Uniqueness comes from the timestamp plus random
// suffix; the store id remains the canonical key.
func newReference() string {
	return fmt.Sprintf("RB-%s-%04d", time.Now().UTC().Format("20060102150405"), rand.IntN(10000))
}

func programPrice(p *model.Program) float64 {
	if p.Price != nil {
		return capacity.AsPrice(p.Price)
	}
	return capacity.AsPrice(p.Cost)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
