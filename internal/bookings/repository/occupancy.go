package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "resort/internal/bookings/errors"
	"resort/pkg/config"
	"resort/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OccupancyRepository persists the per-night claims backing a booking. The
// unique (room_id, night) index is what actually prevents double booking;
// everything above it is a fast-fail optimization.
type OccupancyRepository interface {
	InsertForBooking(ctx context.Context, bookingID string, roomIDs []string, nights []time.Time) error
	DeleteByBooking(ctx context.Context, bookingID string) error
}

type mongoOccupancyRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoOccupancyRepository(cfg *config.Config) OccupancyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoOccupancyRepository{
		cfg:        cfg,
		collection: db.Collection(OccupanciesCollection),
	}
}

// InsertForBooking writes one occupancy per (room, night). A uniqueness
// violation surfaces as ErrNightTaken so callers can roll back and report a
// conflict. Ordered inserts keep partial failure behavior deterministic;
// inside a transaction the whole batch aborts anyway.
func (r *mongoOccupancyRepository) InsertForBooking(ctx context.Context, bookingID string, roomIDs []string, nights []time.Time) error {
	if len(roomIDs) == 0 || len(nights) == 0 {
		return nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]any, 0, len(roomIDs)*len(nights))
	for _, roomID := range roomIDs {
		for _, night := range nights {
			docs = append(docs, &model.Occupancy{
				RoomID:    roomID,
				Night:     night,
				BookingID: bookingID,
				CreatedAt: now,
			})
		}
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", bookingserrors.ErrNightTaken, err)
		}
		return fmt.Errorf("failed to insert occupancies: %w", err)
	}
	return nil
}

func (r *mongoOccupancyRepository) DeleteByBooking(ctx context.Context, bookingID string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteMany(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return fmt.Errorf("failed to delete occupancies for booking %s: %w", bookingID, err)
	}
	return nil
}
