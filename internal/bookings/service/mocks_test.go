package service

import (
	"context"
	"time"

	mongotx "resort/pkg/db/mongo"
	"resort/pkg/model"
)

// Mock repositories for testing

type mockRoomRepository struct {
	findByIDFunc      func(ctx context.Context, id string) (*model.Room, error)
	findByIDsFunc     func(ctx context.Context, ids []string) ([]*model.Room, error)
	findBySlugFunc    func(ctx context.Context, slug string) (*model.Room, error)
	findAvailableFunc func(ctx context.Context, excludeIDs []string) ([]*model.Room, error)
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Room{ID: id}, nil
}

func (m *mockRoomRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Room, error) {
	if m.findByIDsFunc != nil {
		return m.findByIDsFunc(ctx, ids)
	}
	rooms := make([]*model.Room, 0, len(ids))
	for _, id := range ids {
		rooms = append(rooms, &model.Room{ID: id})
	}
	return rooms, nil
}

func (m *mockRoomRepository) FindBySlug(ctx context.Context, slug string) (*model.Room, error) {
	if m.findBySlugFunc != nil {
		return m.findBySlugFunc(ctx, slug)
	}
	return &model.Room{Slug: slug}, nil
}

func (m *mockRoomRepository) FindAvailable(ctx context.Context, excludeIDs []string) ([]*model.Room, error) {
	if m.findAvailableFunc != nil {
		return m.findAvailableFunc(ctx, excludeIDs)
	}
	return []*model.Room{}, nil
}

type mockProgramRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Program, error)
}

func (m *mockProgramRepository) FindByID(ctx context.Context, id string) (*model.Program, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Program{ID: id}, nil
}

type mockBookingRepository struct {
	createFunc                func(ctx context.Context, booking *model.Booking) error
	findByIDFunc              func(ctx context.Context, id string) (*model.Booking, error)
	findAllFunc               func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	findByGuestEmailFunc      func(ctx context.Context, email string) ([]*model.Booking, error)
	countFunc                 func(ctx context.Context) (int64, error)
	updateStatusFunc          func(ctx context.Context, id string, status string) error
	deleteFunc                func(ctx context.Context, id string) error
	busyRoomIDsFunc           func(ctx context.Context, checkIn, checkOut time.Time) ([]string, error)
	isRoomBusyFunc            func(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
	executeTransactionFunc    func(ctx context.Context, fn mongotx.TransactionFunc) error
	transactionsSupportedFunc func(ctx context.Context) bool
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "mock-booking-id"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Booking{ID: id}, nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByGuestEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	if m.findByGuestEmailFunc != nil {
		return m.findByGuestEmailFunc(ctx, email)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingRepository) BusyRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]string, error) {
	if m.busyRoomIDsFunc != nil {
		return m.busyRoomIDsFunc(ctx, checkIn, checkOut)
	}
	return []string{}, nil
}

func (m *mockBookingRepository) IsRoomBusy(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	if m.isRoomBusyFunc != nil {
		return m.isRoomBusyFunc(ctx, roomID, checkIn, checkOut)
	}
	return false, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	if m.executeTransactionFunc != nil {
		return m.executeTransactionFunc(ctx, fn)
	}
	return fn(nil)
}

func (m *mockBookingRepository) TransactionsSupported(ctx context.Context) bool {
	if m.transactionsSupportedFunc != nil {
		return m.transactionsSupportedFunc(ctx)
	}
	return true
}

type mockOccupancyRepository struct {
	insertForBookingFunc func(ctx context.Context, bookingID string, roomIDs []string, nights []time.Time) error
	deleteByBookingFunc  func(ctx context.Context, bookingID string) error
}

func (m *mockOccupancyRepository) InsertForBooking(ctx context.Context, bookingID string, roomIDs []string, nights []time.Time) error {
	if m.insertForBookingFunc != nil {
		return m.insertForBookingFunc(ctx, bookingID, roomIDs, nights)
	}
	return nil
}

func (m *mockOccupancyRepository) DeleteByBooking(ctx context.Context, bookingID string) error {
	if m.deleteByBookingFunc != nil {
		return m.deleteByBookingFunc(ctx, bookingID)
	}
	return nil
}

type mockLockRepository struct {
	acquireFunc          func(ctx context.Context, key, owner string, ttl time.Duration) error
	acquireWithRetryFunc func(ctx context.Context, key, owner string, ttl, retryDelay, timeout time.Duration) error
	releaseFunc          func(ctx context.Context, key, owner string) error
	reapExpiredFunc      func(ctx context.Context) (int64, error)
}

func (m *mockLockRepository) Acquire(ctx context.Context, key, owner string, ttl time.Duration) error {
	if m.acquireFunc != nil {
		return m.acquireFunc(ctx, key, owner, ttl)
	}
	return nil
}

func (m *mockLockRepository) AcquireWithRetry(ctx context.Context, key, owner string, ttl, retryDelay, timeout time.Duration) error {
	if m.acquireWithRetryFunc != nil {
		return m.acquireWithRetryFunc(ctx, key, owner, ttl, retryDelay, timeout)
	}
	return nil
}

func (m *mockLockRepository) Release(ctx context.Context, key, owner string) error {
	if m.releaseFunc != nil {
		return m.releaseFunc(ctx, key, owner)
	}
	return nil
}

func (m *mockLockRepository) ReapExpired(ctx context.Context) (int64, error) {
	if m.reapExpiredFunc != nil {
		return m.reapExpiredFunc(ctx)
	}
	return 0, nil
}

type mockEmitter struct {
	bookingCreatedFunc func(ctx context.Context, booking *model.Booking) error
	published          []*model.Booking
}

func (m *mockEmitter) BookingCreated(ctx context.Context, booking *model.Booking) error {
	m.published = append(m.published, booking)
	if m.bookingCreatedFunc != nil {
		return m.bookingCreatedFunc(ctx, booking)
	}
	return nil
}

type mockStrategy struct {
	reserveFunc func(ctx context.Context, booking *model.Booking, nights []time.Time) error
	reserved    []*model.Booking
}

func (m *mockStrategy) Reserve(ctx context.Context, booking *model.Booking, nights []time.Time) error {
	m.reserved = append(m.reserved, booking)
	if m.reserveFunc != nil {
		return m.reserveFunc(ctx, booking, nights)
	}
	booking.ID = "mock-booking-id"
	return nil
}
