package main

import (
	"context"
	"fmt"
	"time"

	bookingrepository "voyago/internal/bookings/repository"
	tourrepository "voyago/internal/tours/repository"
	"voyago/pkg/config"
	"voyago/pkg/model"
)

const JobName = "seed"

// Initializes the database: ensures collections and indexes exist by writing
// and removing a throwaway booking.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	cfg.Log.Info("Starting database seed job")
	defer cfg.GracefulShutdown()

	seed(ctx, cfg)
	fmt.Println("Seeding completed successfully.")
}

func seed(ctx context.Context, cfg *config.Config) {
	tourRepo := tourrepository.NewMongoTourRepository(cfg)
	if err := tourRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure tour indexes", "error", err)
	}

	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	if err := bookingRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure booking indexes", "error", err)
	}

	booking := &model.Booking{
		Name:        "Test User",
		Phone:       "+1234567890",
		Email:       "test@example.com",
		Adults:      1,
		Children:    0,
		TravelDate:  time.Now().AddDate(0, 0, 7),
		ConfirmTrip: "test trip",
		Message:     "Dummy booking to create database",
		Status:      model.StatusConfirmed,
	}

	if err := bookingRepo.Create(ctx, booking); err != nil {
		cfg.Log.Fatal("Failed to insert seed booking", "error", err)
	}
	cfg.Log.Info("Seed booking saved, collections created", "id", booking.ID)

	if err := bookingRepo.Delete(ctx, booking.ID); err != nil {
		cfg.Log.Fatal("Failed to remove seed booking", "error", err)
	}
	cfg.Log.Info("Seed booking removed")
}
