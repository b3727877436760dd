package repository

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	bookingserrors "resort/internal/bookings/errors"
	"resort/pkg/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LockRepository is the store-backed mutual exclusion used when the
// deployment has no multi-document transactions. Correctness does not
// depend on the reaper: Acquire re-checks expiry inline, so an abandoned
// lock becomes stealable the moment its TTL passes.
type LockRepository interface {
	Acquire(ctx context.Context, key, owner string, ttl time.Duration) error
	AcquireWithRetry(ctx context.Context, key, owner string, ttl, retryDelay, timeout time.Duration) error
	Release(ctx context.Context, key, owner string) error
	ReapExpired(ctx context.Context) (int64, error)
}

type mongoLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoLockRepository(cfg *config.Config) LockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLockRepository{
		cfg:        cfg,
		collection: db.Collection(LocksCollection),
	}
}

// LockKey derives the deterministic lock id for a set of rooms and a date
// range. Room order must not matter, so ids are sorted before hashing.
func LockKey(roomIDs []string, checkIn, checkOut time.Time) string {
	sorted := append([]string(nil), roomIDs...)
	sort.Strings(sorted)

	payload := fmt.Sprintf("%s:%s:%s",
		checkIn.UTC().Format("2006-01-02"),
		checkOut.UTC().Format("2006-01-02"),
		strings.Join(sorted, ","),
	)
	sum := sha1.Sum([]byte(payload))
	return "booking_lock_" + hex.EncodeToString(sum[:])
}

// Acquire performs one atomic "insert if absent, or take over if expired"
// attempt. A live lock makes the filtered upsert collide on _id, which
// Mongo reports as a duplicate key; that maps to ErrLockHeld.
func (r *mongoLockRepository) Acquire(ctx context.Context, key, owner string, ttl time.Duration) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{
		"_id":        key,
		"expires_at": bson.M{"$lte": now},
	}
	update := bson.M{
		"$set": bson.M{
			"owner":      owner,
			"expires_at": now.Add(ttl),
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrLockHeld
		}
		return fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	return nil
}

// AcquireWithRetry retries on contention until timeout elapses. A timeout
// is reported as ErrLockHeld; the caller maps it to a retryable conflict,
// never retrying internally beyond this window.
func (r *mongoLockRepository) AcquireWithRetry(ctx context.Context, key, owner string, ttl, retryDelay, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		err := r.Acquire(ctx, key, owner, ttl)
		if err == nil {
			return nil
		}
		if err != bookingserrors.ErrLockHeld {
			return err
		}
		if time.Now().Add(retryDelay).After(deadline) {
			return bookingserrors.ErrLockHeld
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
}

// Release deletes the lock only when the owner token still matches, so a
// caller that lost its lock to expiry cannot release the next holder's.
func (r *mongoLockRepository) Release(ctx context.Context, key, owner string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": key, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	return nil
}

// ReapExpired removes expired locks left behind by crashed owners.
// Best-effort startup hygiene; Acquire stays correct without it.
func (r *mongoLockRepository) ReapExpired(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now().UTC()}})
	if err != nil {
		return 0, fmt.Errorf("failed to reap expired locks: %w", err)
	}
	return result.DeletedCount, nil
}
