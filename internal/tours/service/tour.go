package service

import (
	"context"
	"errors"
	"sync"

	tourserrors "voyago/internal/tours/errors"
	"voyago/internal/tours/repository"
	"voyago/internal/tours/validator"
	"voyago/pkg/config"
	apperrors "voyago/pkg/errors"
	"voyago/pkg/httputil"
	"voyago/pkg/model"
	"voyago/pkg/sanitizer"
	"voyago/pkg/storage"
)

type TourService interface {
	ListActive(ctx context.Context) ([]*model.Tour, error)
	GetActive(ctx context.Context, id string) (*model.Tour, error)
	ListAdmin(ctx context.Context, params httputil.ListParams) ([]*model.Tour, int64, error)
	Create(ctx context.Context, tour *model.Tour, image *storage.Upload) (*model.Tour, error)
	Update(ctx context.Context, id string, fields *model.Tour, image *storage.Upload) (*model.Tour, error)
	SetStatus(ctx context.Context, id string, isActive bool) (*model.Tour, error)
	Delete(ctx context.Context, id string) error
}

type tourService struct {
	repo      repository.TourRepository
	validator *validator.TourValidator
	images    storage.ImageStore
	cfg       *config.Config
}

func NewTourService(
	repo repository.TourRepository,
	tourValidator *validator.TourValidator,
	images storage.ImageStore,
	cfg *config.Config,
) TourService {
	return &tourService{
		repo:      repo,
		validator: tourValidator,
		images:    images,
		cfg:       cfg,
	}
}

func (s *tourService) ListActive(ctx context.Context) ([]*model.Tour, error) {
	tours, err := s.repo.FindActive(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list active tours", "error", err)
		return nil, apperrors.Internal("Failed to fetch tours", err)
	}
	return tours, nil
}

// GetActive resolves a tour for the public detail page. Inactive tours are
// invisible here even though they still exist.
func (s *tourService) GetActive(ctx context.Context, id string) (*model.Tour, error) {
	if id == "" {
		return nil, apperrors.NotFound("Tour")
	}

	tour, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, tourserrors.ErrNotFound) || errors.Is(err, tourserrors.ErrInvalidID) {
			return nil, apperrors.NotFound("Tour")
		}
		return nil, apperrors.Internal("Failed to fetch tour", err)
	}

	if !tour.IsActive {
		return nil, apperrors.NotFound("Tour")
	}

	return tour, nil
}

func (s *tourService) ListAdmin(ctx context.Context, params httputil.ListParams) ([]*model.Tour, int64, error) {
	query := repository.TourQuery{
		IsActive:  statusFilter(params.Status),
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
		Skip:      params.Skip(),
		Limit:     int64(params.Limit),
	}

	var total int64
	var tours []*model.Tour
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		total, errCount = s.repo.Count(ctx, query)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count tours", "error", errCount)
			errCount = apperrors.Internal("Failed to fetch tours", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		tours, errFind = s.repo.FindPage(ctx, query)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list tours", "error", errFind)
			errFind = apperrors.Internal("Failed to fetch tours", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return tours, total, nil
}

func (s *tourService) Create(ctx context.Context, tour *model.Tour, image *storage.Upload) (*model.Tour, error) {
	s.sanitize(tour)

	imageURL, err := s.storeImage(image)
	if err != nil {
		return nil, err
	}
	tour.ImageURL = imageURL

	if err := s.validate(tour); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tour); err != nil {
		if errors.Is(err, tourserrors.ErrDuplicateTitle) {
			return nil, apperrors.Conflict("Tour title already exists")
		}
		s.cfg.Log.Error("Failed to create tour", "title", tour.Title, "error", err)
		return nil, apperrors.Internal("Failed to create tour. Please try again.", err)
	}

	s.cfg.Log.Info("Tour created", "id", tour.ID, "title", tour.Title)
	return tour, nil
}

// Update overwrites every editable field. The image is replaced only when a
// new one was uploaded; the previous file stays on disk.
func (s *tourService) Update(ctx context.Context, id string, fields *model.Tour, image *storage.Upload) (*model.Tour, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, tourserrors.ErrNotFound) || errors.Is(err, tourserrors.ErrInvalidID) {
			return nil, apperrors.NotFound("Tour")
		}
		return nil, apperrors.Internal("Failed to fetch tour", err)
	}

	s.sanitize(fields)

	existing.Title = fields.Title
	existing.Price = fields.Price
	existing.Duration = fields.Duration
	existing.Category = fields.Category
	existing.Description = fields.Description
	existing.DisplayOrder = fields.DisplayOrder
	existing.IsActive = fields.IsActive

	if image != nil {
		imageURL, err := s.storeImage(image)
		if err != nil {
			return nil, err
		}
		existing.ImageURL = imageURL
	}

	if err := s.validate(existing); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, existing); err != nil {
		if errors.Is(err, tourserrors.ErrDuplicateTitle) {
			return nil, apperrors.Conflict("Tour title already exists")
		}
		if errors.Is(err, tourserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Tour")
		}
		s.cfg.Log.Error("Failed to update tour", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update tour", err)
	}

	s.cfg.Log.Info("Tour updated", "id", id, "title", existing.Title)
	return existing, nil
}

func (s *tourService) SetStatus(ctx context.Context, id string, isActive bool) (*model.Tour, error) {
	tour, err := s.repo.SetActive(ctx, id, isActive)
	if err != nil {
		if errors.Is(err, tourserrors.ErrNotFound) || errors.Is(err, tourserrors.ErrInvalidID) {
			return nil, apperrors.NotFound("Tour")
		}
		s.cfg.Log.Error("Failed to update tour status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update tour status", err)
	}

	s.cfg.Log.Info("Tour status updated", "id", id, "is_active", isActive)
	return tour, nil
}

// Delete removes the record only. The stored image file and any bookings
// referencing the tour are left as they are.
func (s *tourService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, tourserrors.ErrNotFound) || errors.Is(err, tourserrors.ErrInvalidID) {
			return apperrors.NotFound("Tour")
		}
		s.cfg.Log.Error("Failed to delete tour", "id", id, "error", err)
		return apperrors.Internal("Failed to delete tour", err)
	}

	s.cfg.Log.Info("Tour deleted", "id", id)
	return nil
}

// --- Helpers ---

func (s *tourService) sanitize(tour *model.Tour) {
	tour.Title = sanitizer.TrimAndNormalize(tour.Title)
	tour.Description = sanitizer.TrimAndNormalize(tour.Description)
}

func (s *tourService) validate(tour *model.Tour) error {
	if err := s.validator.Validate(tour); err != nil {
		var fieldErrs apperrors.FieldErrors
		if errors.As(err, &fieldErrs) {
			s.cfg.Log.Warn("Tour validation failed", "violations", len(fieldErrs))
			return apperrors.Validation(fieldErrs)
		}
		return apperrors.Internal("Failed to validate tour", err)
	}
	return nil
}

// storeImage persists the upload and returns its public path, or the
// placeholder when no image was supplied.
func (s *tourService) storeImage(image *storage.Upload) (string, error) {
	if image == nil {
		return s.cfg.PlaceholderImage, nil
	}

	path, err := s.images.Store(image)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			return "", apperrors.InvalidInput("Only image files are allowed")
		}
		s.cfg.Log.Error("Failed to store tour image", "filename", image.Filename, "error", err)
		return "", apperrors.Internal("Failed to store tour image", err)
	}
	return path, nil
}

func statusFilter(status string) *bool {
	switch status {
	case "active":
		active := true
		return &active
	case "inactive":
		inactive := false
		return &inactive
	default:
		return nil
	}
}
