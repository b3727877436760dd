package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort = "PORT"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvTaxRate      = "BOOKING_TAX_RATE"
	EnvMaxGroupSize = "BOOKING_MAX_GROUP_SIZE"

	EnvLockTTL            = "BOOKING_LOCK_TTL"
	EnvLockRetryDelay     = "BOOKING_LOCK_RETRY_DELAY"
	EnvLockAcquireTimeout = "BOOKING_LOCK_ACQUIRE_TIMEOUT"

	EnvKafkaBrokers        = "KAFKA_BROKERS"
	EnvBookingEventsTopic  = "KAFKA_BOOKING_EVENTS_TOPIC"
	EnvEventPublishTimeout = "KAFKA_PUBLISH_TIMEOUT"

	EnvLogLevel = "LOG_LEVEL"
)
