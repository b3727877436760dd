package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	bookingserrors "resort/internal/bookings/errors"
	"resort/internal/bookings/validator"
	"resort/pkg/config"
	apperrors "resort/pkg/errors"
	"resort/pkg/logger"
	"resort/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		TaxRate:             0.18,
		MaxGroupSize:        4,
		LockTTL:             10 * time.Second,
		LockRetryDelay:      time.Millisecond,
		LockAcquireTimeout:  50 * time.Millisecond,
		EventPublishTimeout: time.Second,
	}
}

type testDeps struct {
	rooms       *mockRoomRepository
	programs    *mockProgramRepository
	bookings    *mockBookingRepository
	occupancies *mockOccupancyRepository
	strategy    *mockStrategy
	emitter     *mockEmitter
}

func newTestService(cfg *config.Config, deps *testDeps) BookingService {
	return NewBookingService(
		cfg,
		deps.rooms,
		deps.programs,
		deps.bookings,
		deps.occupancies,
		validator.NewBookingValidator(cfg.Log),
		deps.strategy,
		deps.emitter,
	)
}

func defaultDeps() *testDeps {
	return &testDeps{
		rooms:       &mockRoomRepository{},
		programs:    &mockProgramRepository{},
		bookings:    &mockBookingRepository{},
		occupancies: &mockOccupancyRepository{},
		strategy:    &mockStrategy{},
		emitter:     &mockEmitter{},
	}
}

func createRequest() *model.BookingRequest {
	return &model.BookingRequest{
		GuestName:  "Dana Rivers",
		GuestEmail: "dana@example.com",
		Guests:     intPtr(5),
		CheckIn:    "2025-06-10",
		CheckOut:   "2025-06-12",
	}
}

func inventory() []*model.Room {
	return []*model.Room{
		{ID: "A", Capacity: intPtr(2), PricePerNight: floatPtr(100)},
		{ID: "B", Capacity: intPtr(3), PricePerNight: floatPtr(80)},
		{ID: "C", Capacity: intPtr(5), PricePerNight: floatPtr(200)},
	}
}

func TestCreateBooking_AllocatesAndPrices(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()
	byID := map[string]*model.Room{}
	for _, r := range inventory() {
		byID[r.ID] = r
	}
	deps.rooms.findAvailableFunc = func(ctx context.Context, excludeIDs []string) ([]*model.Room, error) {
		return inventory(), nil
	}
	deps.rooms.findByIDsFunc = func(ctx context.Context, ids []string) ([]*model.Room, error) {
		var out []*model.Room
		for _, id := range ids {
			out = append(out, byID[id])
		}
		return out, nil
	}

	svc := newTestService(cfg, deps)
	result, err := svc.CreateBooking(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"C"}, result.AllocatedRooms)
	assert.Equal(t, model.StatusPending, result.Status)
	assert.True(t, strings.HasPrefix(result.Reference, "RB-"), "reference %q", result.Reference)

	// 2 nights at 200, tax 18% on the subtotal.
	require.NotNil(t, result.PriceBreakdown)
	assert.InDelta(t, 400.0, result.PriceBreakdown.RoomsSubtotal, 0.001)
	assert.InDelta(t, 72.0, result.PriceBreakdown.Tax, 0.001)
	assert.InDelta(t, 472.0, result.PriceBreakdown.Total, 0.001)

	require.Len(t, deps.strategy.reserved, 1)
	booking := deps.strategy.reserved[0]
	assert.Equal(t, 2, booking.Nights)
	assert.Equal(t, 5, booking.Guests)
}

func TestCreateBooking_NightsPassedToStrategy(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()
	deps.rooms.findAvailableFunc = func(ctx context.Context, excludeIDs []string) ([]*model.Room, error) {
		return inventory(), nil
	}

	var capturedNights []time.Time
	deps.strategy.reserveFunc = func(ctx context.Context, booking *model.Booking, nights []time.Time) error {
		capturedNights = nights
		booking.ID = "b1"
		return nil
	}

	svc := newTestService(cfg, deps)
	_, err := svc.CreateBooking(context.Background(), createRequest())
	require.NoError(t, err)

	// Half-open range: the check-out night is not claimed.
	require.Len(t, capturedNights, 2)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), capturedNights[0])
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), capturedNights[1])
}

func TestCreateBooking_NoAvailability(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()
	deps.rooms.findAvailableFunc = func(ctx context.Context, excludeIDs []string) ([]*model.Room, error) {
		return []*model.Room{{ID: "A", Capacity: intPtr(2)}}, nil
	}

	svc := newTestService(cfg, deps)
	_, err := svc.CreateBooking(context.Background(), createRequest())
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNoAvailability, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	assert.Empty(t, deps.strategy.reserved)
}

func TestCreateBooking_ValidationFailure(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()
	svc := newTestService(cfg, deps)

	req := createRequest()
	req.CheckOut = req.CheckIn

	_, err := svc.CreateBooking(context.Background(), req)
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode())
}

func TestCreateBooking_ExplicitSelection(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()

	roomID := "64b0000000000000000000a1"
	deps.rooms.findByIDFunc = func(ctx context.Context, id string) (*model.Room, error) {
		return &model.Room{ID: id, Capacity: intPtr(4), PricePerNight: floatPtr(150)}, nil
	}
	deps.rooms.findByIDsFunc = func(ctx context.Context, ids []string) ([]*model.Room, error) {
		return []*model.Room{{ID: roomID, Capacity: intPtr(4), PricePerNight: floatPtr(150)}}, nil
	}

	svc := newTestService(cfg, deps)
	req := createRequest()
	req.Guests = intPtr(2)
	req.SelectedRoomIDs = []string{roomID}

	result, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{roomID}, result.AllocatedRooms)
}

func TestCreateBooking_ExplicitSelectionBusy(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()

	roomID := "64b0000000000000000000a1"
	deps.bookings.busyRoomIDsFunc = func(ctx context.Context, checkIn, checkOut time.Time) ([]string, error) {
		return []string{roomID}, nil
	}

	svc := newTestService(cfg, deps)
	req := createRequest()
	req.SelectedRoomIDs = []string{roomID}

	_, err := svc.CreateBooking(context.Background(), req)
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
	assert.Empty(t, deps.strategy.reserved)
}

func TestCreateBooking_ExplicitSelectionUnknownRoom(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()
	deps.rooms.findByIDFunc = func(ctx context.Context, id string) (*model.Room, error) {
		return nil, bookingserrors.ErrRoomNotFound
	}

	svc := newTestService(cfg, deps)
	req := createRequest()
	req.SelectedRoomIDs = []string{"64b0000000000000000000a1"}

	_, err := svc.CreateBooking(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}

func TestCreateBooking_ProgramPricing(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()
	deps.rooms.findAvailableFunc = func(ctx context.Context, excludeIDs []string) ([]*model.Room, error) {
		return inventory(), nil
	}
	deps.rooms.findByIDsFunc = func(ctx context.Context, ids []string) ([]*model.Room, error) {
		return []*model.Room{{ID: "C", Capacity: intPtr(5), PricePerNight: floatPtr(200)}}, nil
	}
	deps.programs.findByIDFunc = func(ctx context.Context, id string) (*model.Program, error) {
		switch id {
		case "spa":
			return &model.Program{ID: id, Title: "Spa Day", Price: "50"}, nil
		case "hike":
			return &model.Program{ID: id, Name: "Guided Hike", Cost: 30}, nil
		default:
			return nil, errors.New("not found")
		}
	}

	svc := newTestService(cfg, deps)
	req := createRequest()
	req.SelectedProgramIDs = []string{"spa", "hike", "ghost"}

	result, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	pb := result.PriceBreakdown
	require.NotNil(t, pb)
	assert.InDelta(t, 80.0, pb.ProgramsSubtotal, 0.001)
	// Unknown program is dropped, not fatal.
	require.Len(t, pb.Programs, 2)
	assert.Equal(t, "Spa Day", pb.Programs[0].Title)
	assert.InDelta(t, 50.0, pb.Programs[0].Price, 0.001)
	// (400 + 80) * 0.18
	assert.InDelta(t, 86.4, pb.Tax, 0.001)
	assert.InDelta(t, 566.4, pb.Total, 0.001)
}

func TestCreateBooking_EventFailureDoesNotFailBooking(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()
	deps.rooms.findAvailableFunc = func(ctx context.Context, excludeIDs []string) ([]*model.Room, error) {
		return inventory(), nil
	}
	deps.emitter.bookingCreatedFunc = func(ctx context.Context, booking *model.Booking) error {
		return errors.New("broker unreachable")
	}

	svc := newTestService(cfg, deps)
	result, err := svc.CreateBooking(context.Background(), createRequest())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, deps.emitter.published, 1)
}

func TestCreateBooking_StatusOverride(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()
	deps.rooms.findAvailableFunc = func(ctx context.Context, excludeIDs []string) ([]*model.Room, error) {
		return inventory(), nil
	}

	svc := newTestService(cfg, deps)
	req := createRequest()
	req.Status = model.StatusConfirmed

	result, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, result.Status)
}

func TestCreateBooking_ReserveConflictPropagates(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()
	deps.rooms.findAvailableFunc = func(ctx context.Context, excludeIDs []string) ([]*model.Room, error) {
		return inventory(), nil
	}
	deps.strategy.reserveFunc = func(ctx context.Context, booking *model.Booking, nights []time.Time) error {
		return apperrors.Conflict("lost the race")
	}

	svc := newTestService(cfg, deps)
	_, err := svc.CreateBooking(context.Background(), createRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	// No event for a booking that never committed.
	assert.Empty(t, deps.emitter.published)
}

func TestCancelBooking(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()

	var updatedStatus string
	var releasedBooking string
	deps.bookings.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return &model.Booking{ID: id, Status: model.StatusConfirmed}, nil
	}
	deps.bookings.updateStatusFunc = func(ctx context.Context, id string, status string) error {
		updatedStatus = status
		return nil
	}
	deps.occupancies.deleteByBookingFunc = func(ctx context.Context, bookingID string) error {
		releasedBooking = bookingID
		return nil
	}

	svc := newTestService(cfg, deps)
	require.NoError(t, svc.CancelBooking(context.Background(), "b1"))
	assert.Equal(t, model.StatusCancelled, updatedStatus)
	assert.Equal(t, "b1", releasedBooking)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()

	updateCalled := false
	deps.bookings.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return &model.Booking{ID: id, Status: model.StatusCancelled}, nil
	}
	deps.bookings.updateStatusFunc = func(ctx context.Context, id string, status string) error {
		updateCalled = true
		return nil
	}

	svc := newTestService(cfg, deps)
	require.NoError(t, svc.CancelBooking(context.Background(), "b1"))
	assert.False(t, updateCalled)
}

func TestDeleteBooking_ReleasesNights(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()

	var deleted, released string
	deps.bookings.deleteFunc = func(ctx context.Context, id string) error {
		deleted = id
		return nil
	}
	deps.occupancies.deleteByBookingFunc = func(ctx context.Context, bookingID string) error {
		released = bookingID
		return nil
	}

	svc := newTestService(cfg, deps)
	require.NoError(t, svc.DeleteBooking(context.Background(), "b2"))
	assert.Equal(t, "b2", deleted)
	assert.Equal(t, "b2", released)
}

func TestGetBookingByID_NotFound(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()
	deps.bookings.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return nil, bookingserrors.ErrNotFound
	}

	svc := newTestService(cfg, deps)
	_, err := svc.GetBookingByID(context.Background(), "64b0000000000000000000a1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}

func TestGetAllBookings_ReturnsPageAndTotal(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()
	deps.bookings.findAllFunc = func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
		return []*model.Booking{{ID: "b1"}, {ID: "b2"}}, nil
	}
	deps.bookings.countFunc = func(ctx context.Context) (int64, error) {
		return 42, nil
	}

	svc := newTestService(cfg, deps)
	bookings, total, err := svc.GetAllBookings(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.Equal(t, int64(42), total)
}

func TestAvailableRooms_FiltersBusy(t *testing.T) {
	cfg := newTestConfig()
	deps := defaultDeps()

	var excluded []string
	deps.bookings.busyRoomIDsFunc = func(ctx context.Context, checkIn, checkOut time.Time) ([]string, error) {
		return []string{"A"}, nil
	}
	deps.rooms.findAvailableFunc = func(ctx context.Context, excludeIDs []string) ([]*model.Room, error) {
		excluded = excludeIDs
		return []*model.Room{{ID: "B"}}, nil
	}

	svc := newTestService(cfg, deps)
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	rooms, err := svc.AvailableRooms(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, excluded)
	require.Len(t, rooms, 1)
	assert.Equal(t, "B", rooms[0].ID)
}

func TestAvailableRooms_InvalidRange(t *testing.T) {
	cfg := newTestConfig()
	svc := newTestService(cfg, defaultDeps())

	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.AvailableRooms(context.Background(), day, day)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}
