package main

import (
	"context"

	"resort/internal/bookings/events"
	"resort/internal/bookings/handler"
	"resort/internal/bookings/repository"
	"resort/internal/bookings/service"
	"resort/internal/bookings/validator"
	"resort/pkg/app"
	"resort/pkg/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Bookings service")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	publisher := initPublisher(cfg)
	if publisher != nil {
		defer publisher.Close()
	}

	bookingService := initServices(cfg, publisher)
	serverApp := app.NewApplication(cfg,
		handler.NewHealthHandler(cfg),
		handler.NewBookingHandler(cfg, bookingService),
	)
	if err := serverApp.Run(); err != nil {
		cfg.Log.Fatal("Server exited with error", "error", err)
	}
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	roomRepo := repository.NewMongoRoomRepository(cfg)
	programRepo := repository.NewMongoProgramRepository(cfg)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	occupancyRepo := repository.NewMongoOccupancyRepository(cfg)
	lockRepo := repository.NewMongoLockRepository(cfg)

	reapExpiredLocks(cfg, lockRepo)

	strategy := service.SelectReservationStrategy(cfg, bookingRepo, occupancyRepo, lockRepo)

	var emitter service.EventEmitter
	if publisher != nil {
		emitter = publisher
	}

	bookingService := service.NewBookingService(
		cfg,
		roomRepo,
		programRepo,
		bookingRepo,
		occupancyRepo,
		bookingValidator,
		strategy,
		emitter,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

// reapExpiredLocks clears locks orphaned by a previous crash. Best-effort:
// startup proceeds either way since acquires steal expired locks anyway.
func reapExpiredLocks(cfg *config.Config, locks repository.LockRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	reaped, err := locks.ReapExpired(ctx)
	if err != nil {
		cfg.Log.Warn("Failed to reap expired booking locks", "error", err)
		return
	}
	if reaped > 0 {
		cfg.Log.Info("Reaped expired booking locks", "count", reaped)
	}
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Warn("No Kafka brokers configured, booking events disabled")
		return nil
	}
	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.BookingEventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Warn("Failed to initialize event publisher, booking events disabled", "error", err)
		return nil
	}
	return publisher
}
