package main

import (
	"context"
	"path/filepath"
	"time"

	bookinghandler "voyago/internal/bookings/handler"
	bookingrepository "voyago/internal/bookings/repository"
	bookingservice "voyago/internal/bookings/service"
	bookingvalidator "voyago/internal/bookings/validator"
	systemhandler "voyago/internal/system/handler"
	tourhandler "voyago/internal/tours/handler"
	tourrepository "voyago/internal/tours/repository"
	tourservice "voyago/internal/tours/service"
	tourvalidator "voyago/internal/tours/validator"
	"voyago/pkg/app"
	"voyago/pkg/config"
	"voyago/pkg/contracts"
	"voyago/pkg/events"
	"voyago/pkg/storage"
)

const ServiceName = "voyago-api"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Voyago API server")
	cfg.SetMongo()

	publisher := initPublisher(cfg)
	handlers := initHandlers(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.OnShutdown("event publisher", publisher)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tourRepo := tourrepository.NewMongoTourRepository(cfg)
	if err := tourRepo.EnsureIndexes(ensureCtx); err != nil {
		cfg.Log.Fatal("Failed to ensure tour indexes", "error", err)
	}

	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	if err := bookingRepo.EnsureIndexes(ensureCtx); err != nil {
		cfg.Log.Fatal("Failed to ensure booking indexes", "error", err)
	}

	images, err := storage.NewDiskImageStore(
		filepath.Join(cfg.ImageDir, "tours"),
		"/images/tours",
	)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize image store", "error", err)
	}

	tourService := tourservice.NewTourService(
		tourRepo,
		tourvalidator.NewTourValidator(),
		images,
		cfg,
	)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		systemhandler.NewSystemHandler(cfg.Client.Mongo, cfg.Log),
		tourhandler.NewTourHandler(tourService, cfg.Log, cfg.MaxUploadSize),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
	}
}

// initPublisher picks Kafka when brokers are configured, otherwise a no-op
// publisher so the API works without any broker running.
func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.NopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}
	cfg.Log.Info("Kafka publisher initialized", "topic", cfg.KafkaTopic)
	return publisher
}
