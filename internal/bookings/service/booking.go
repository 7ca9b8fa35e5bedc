package service

import (
	"context"
	"errors"
	"sync"

	bookingserrors "voyago/internal/bookings/errors"
	"voyago/internal/bookings/repository"
	"voyago/internal/bookings/validator"
	"voyago/pkg/config"
	apperrors "voyago/pkg/errors"
	"voyago/pkg/events"
	"voyago/pkg/httputil"
	"voyago/pkg/model"
	"voyago/pkg/sanitizer"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.BookingConfirmation, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, params httputil.ListParams) ([]*model.Booking, int64, error)
	UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create validates and persists a submission. New bookings always start
// pending; the caller gets back the minimal confirmation projection, not
// the full record.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.BookingConfirmation, error) {
	s.applyDefaults(booking)
	s.sanitize(booking)

	if err := s.validate(booking); err != nil {
		return nil, err
	}

	// Second guard beyond format validation: the travel date must not fall
	// before today, normalized to midnight.
	if booking.TravelDate.Before(validator.StartOfToday()) {
		return nil, apperrors.InvalidInput("Travel date cannot be in the past")
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking. Please try again.", err)
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"email", booking.Email,
		"confirm_trip", booking.ConfirmTrip,
	)
	s.publish(ctx, events.New(events.BookingCreated, booking))

	return &model.BookingConfirmation{
		ID:        booking.ID,
		Name:      booking.Name,
		Email:     booking.Email,
		CreatedAt: booking.CreatedAt,
	}, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFound("Booking")
		}
		return nil, apperrors.Internal("Failed to fetch booking", err)
	}

	return booking, nil
}

func (s *bookingService) List(ctx context.Context, params httputil.ListParams) ([]*model.Booking, int64, error) {
	query := repository.BookingQuery{
		Status:    params.Status,
		Search:    params.Search,
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
		Skip:      params.Skip(),
		Limit:     int64(params.Limit),
	}

	var total int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		total, errCount = s.repo.Count(ctx, query)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to fetch bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindPage(ctx, query)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to fetch bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, total, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	if !model.ValidStatus(status) {
		return nil, apperrors.Validation(apperrors.FieldErrors{
			{Field: "status", Message: "Invalid status"},
		})
	}

	booking, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFound("Booking")
		}
		s.cfg.Log.Error("Failed to update booking status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	s.cfg.Log.Info("Booking status updated", "id", id, "status", status)
	s.publish(ctx, events.New(events.BookingStatusChanged, booking))

	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.NotFound("Booking")
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted", "id", id)
	return nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.StatusPending
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Name = sanitizer.NormalizeName(b.Name)
	b.Phone = sanitizer.NormalizePhone(b.Phone)
	b.Email = sanitizer.NormalizeEmail(b.Email)
	b.ConfirmTrip = sanitizer.TrimAndNormalize(b.ConfirmTrip)
	b.Message = sanitizer.TrimAndNormalize(b.Message)
}

func (s *bookingService) validate(b *model.Booking) error {
	if err := s.validator.Validate(b); err != nil {
		var fieldErrs apperrors.FieldErrors
		if errors.As(err, &fieldErrs) {
			s.cfg.Log.Warn("Booking validation failed", "violations", len(fieldErrs))
			return apperrors.Validation(fieldErrs)
		}
		return apperrors.Internal("Failed to validate booking", err)
	}
	return nil
}

// publish is best-effort: the booking write has already committed, so a
// publish failure only gets logged.
func (s *bookingService) publish(ctx context.Context, evt events.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "event", evt.Type, "error", err)
	}
}
