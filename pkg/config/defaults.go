package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "resort"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 << 20

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Fixed tax rate applied to the combined rooms+programs subtotal.
	DefaultTaxRate = 0.18

	// Upper bound on multi-room combination size. The combination search is
	// C(n,k); keep this small for realistic candidate sets of tens of rooms.
	DefaultMaxGroupSize = 4

	DefaultLockTTL            = 10 * time.Second
	DefaultLockRetryDelay     = 150 * time.Millisecond
	DefaultLockAcquireTimeout = 3 * time.Second

	DefaultKafkaBrokers        = "localhost:9092"
	DefaultBookingEventsTopic  = "bookings.events"
	DefaultEventPublishTimeout = 5 * time.Second

	DefaultLogLevel = "info"

	DefaultPaginationLimit = 100
)

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
