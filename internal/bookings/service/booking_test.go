package service

import (
	"context"
	"testing"
	"time"

	bookingserrors "voyago/internal/bookings/errors"
	"voyago/internal/bookings/repository"
	"voyago/internal/bookings/validator"
	"voyago/pkg/config"
	apperrors "voyago/pkg/errors"
	"voyago/pkg/events"
	"voyago/pkg/httputil"
	"voyago/pkg/logger"
	"voyago/pkg/model"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockBookingRepository struct {
	createFunc       func(ctx context.Context, booking *model.Booking) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Booking, error)
	findPageFunc     func(ctx context.Context, q repository.BookingQuery) ([]*model.Booking, error)
	countFunc        func(ctx context.Context, q repository.BookingQuery) (int64, error)
	updateStatusFunc func(ctx context.Context, id string, status string) (*model.Booking, error)
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockBookingRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "64f1b2c3d4e5f6a7b8c9d0e1"
	booking.CreatedAt = time.Now().UTC()
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindPage(ctx context.Context, q repository.BookingQuery) ([]*model.Booking, error) {
	if m.findPageFunc != nil {
		return m.findPageFunc(ctx, q)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Count(ctx context.Context, q repository.BookingQuery) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, q)
	}
	return 0, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// capturePublisher records every published event.
type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(ctx context.Context, evt events.Event) error {
	p.published = append(p.published, evt)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newTestService(repo repository.BookingRepository, publisher events.Publisher) BookingService {
	cfg := newTestConfig()
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return NewBookingService(repo, validator.NewBookingValidator(cfg.Log), publisher, cfg)
}

func validBooking() *model.Booking {
	return &model.Booking{
		Name:        "Jane Doe",
		Phone:       "+1 (555) 123-4567",
		Email:       "Jane.Doe@Example.com",
		Adults:      2,
		Children:    1,
		TravelDate:  time.Now().AddDate(0, 0, 14),
		ConfirmTrip: "Sahara Sunset Trek",
		Message:     "Window seats please",
	}
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreateBooking_ReturnsConfirmation(t *testing.T) {
	publisher := &capturePublisher{}
	svc := newTestService(&mockBookingRepository{}, publisher)

	booking := validBooking()
	confirmation, err := svc.Create(context.Background(), booking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if confirmation.ID == "" {
		t.Error("expected assigned ID in confirmation")
	}
	if confirmation.Name != "Jane Doe" {
		t.Errorf("unexpected confirmation name: %q", confirmation.Name)
	}
	if confirmation.Email != "jane.doe@example.com" {
		t.Errorf("expected lowercased email, got %q", confirmation.Email)
	}
	if booking.Status != model.StatusPending {
		t.Errorf("expected pending status, got %q", booking.Status)
	}
	if len(publisher.published) != 1 || publisher.published[0].Type != events.BookingCreated {
		t.Errorf("expected one booking.created event, got %v", publisher.published)
	}
}

func TestCreateBooking_PastTravelDate(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, nil)

	booking := validBooking()
	booking.TravelDate = time.Now().AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), booking)

	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus != 400 {
		t.Fatalf("expected status 400, got %d", appErr.HTTPStatus)
	}
	if appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", appErr.Code)
	}
	found := false
	for _, fe := range appErr.Fields {
		if fe.Field == "travelDate" && fe.Message == "Travel date cannot be in the past" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected travelDate violation, got %v", appErr.Fields)
	}
}

func TestCreateBooking_ValidationFailure(t *testing.T) {
	publisher := &capturePublisher{}
	svc := newTestService(&mockBookingRepository{}, publisher)

	booking := validBooking()
	booking.Name = "J"
	booking.Phone = "123"

	_, err := svc.Create(context.Background(), booking)

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", appErr.Code)
	}
	if len(appErr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(appErr.Fields), appErr.Fields)
	}
	if appErr.Fields[0].Message != "Name must be 2-100 characters" {
		t.Errorf("unexpected first violation: %q", appErr.Fields[0].Message)
	}
	if len(publisher.published) != 0 {
		t.Errorf("expected no events for rejected booking, got %d", len(publisher.published))
	}
}

// ────────────────────────────────────────────────
// List
// ────────────────────────────────────────────────

func TestListBookings_QueryPassthrough(t *testing.T) {
	var captured repository.BookingQuery
	repo := &mockBookingRepository{
		findPageFunc: func(ctx context.Context, q repository.BookingQuery) ([]*model.Booking, error) {
			captured = q
			return []*model.Booking{validBooking()}, nil
		},
		countFunc: func(ctx context.Context, q repository.BookingQuery) (int64, error) {
			return 1, nil
		},
	}
	svc := newTestService(repo, nil)

	bookings, total, err := svc.List(context.Background(), httputil.ListParams{
		Page:      3,
		Limit:     20,
		SortBy:    "travelDate",
		SortOrder: "asc",
		Status:    "confirmed",
		Search:    "jane",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(bookings) != 1 {
		t.Errorf("expected 1 booking with total 1, got %d/%d", len(bookings), total)
	}
	if captured.Status != "confirmed" || captured.Search != "jane" {
		t.Errorf("filter not passed through: %+v", captured)
	}
	if captured.Skip != 40 || captured.Limit != 20 {
		t.Errorf("expected skip 40 limit 20, got %d/%d", captured.Skip, captured.Limit)
	}
	if captured.SortBy != "travelDate" || captured.SortOrder != "asc" {
		t.Errorf("sort not passed through: %+v", captured)
	}
}

// ────────────────────────────────────────────────
// UpdateStatus / Delete
// ────────────────────────────────────────────────

func TestUpdateStatus_InvalidValue(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, nil)

	_, err := svc.UpdateStatus(context.Background(), "64f1b2c3d4e5f6a7b8c9d0e1", "archived")

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", appErr.Code)
	}
	if len(appErr.Fields) != 1 || appErr.Fields[0].Message != "Invalid status" {
		t.Errorf("unexpected violations: %v", appErr.Fields)
	}
}

func TestUpdateStatus_PublishesEvent(t *testing.T) {
	publisher := &capturePublisher{}
	repo := &mockBookingRepository{
		updateStatusFunc: func(ctx context.Context, id string, status string) (*model.Booking, error) {
			booking := validBooking()
			booking.ID = id
			booking.Status = status
			return booking, nil
		},
	}
	svc := newTestService(repo, publisher)

	booking, err := svc.UpdateStatus(context.Background(), "64f1b2c3d4e5f6a7b8c9d0e1", model.StatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != model.StatusConfirmed {
		t.Errorf("expected confirmed status, got %q", booking.Status)
	}
	if len(publisher.published) != 1 || publisher.published[0].Type != events.BookingStatusChanged {
		t.Errorf("expected one status_changed event, got %v", publisher.published)
	}
}

func TestDeleteBooking_NotFound(t *testing.T) {
	repo := &mockBookingRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, nil)

	err := svc.Delete(context.Background(), "64f1b2c3d4e5f6a7b8c9d0e1")

	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus != 404 {
		t.Errorf("expected status 404, got %d", appErr.HTTPStatus)
	}
	if appErr.Message != "Booking not found" {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}
