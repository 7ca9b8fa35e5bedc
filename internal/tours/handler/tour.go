package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"voyago/internal/tours/service"
	apperrors "voyago/pkg/errors"
	"voyago/pkg/httputil"
	"voyago/pkg/logger"
	"voyago/pkg/model"
	"voyago/pkg/storage"
)

type TourHandler struct {
	service       service.TourService
	log           *logger.Logger
	maxUploadSize int64
}

func NewTourHandler(service service.TourService, log *logger.Logger, maxUploadSize int64) *TourHandler {
	return &TourHandler{
		service:       service,
		log:           log,
		maxUploadSize: maxUploadSize,
	}
}

// List serves the public tour listing: the full active set, no pagination.
func (h *TourHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tours, err := h.service.ListActive(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, tours); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *TourHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tour, err := h.service.GetActive(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, tour); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "error", err)
	}
}

// ListAdmin serves the admin table: paginated, all statuses, optional
// status filter.
func (h *TourHandler) ListAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	params := httputil.ExtractListParams(r)

	tours, total, err := h.service.ListAdmin(r.Context(), params)
	if err != nil {
		h.writeError(w, "ListAdmin", err)
		return
	}

	pagination := httputil.NewPagination(params.Page, params.Limit, total)
	if err := httputil.WritePaginated(w, tours, pagination); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListAdmin", "error", err)
	}
}

func (h *TourHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fields, image, err := h.parseTourForm(r)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	tour, err := h.service.Create(r.Context(), fields, image)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, "Tour created successfully!", tour); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *TourHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	fields, image, err := h.parseTourForm(r)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	tour, err := h.service.Update(r.Context(), ps.ByName("id"), fields, image)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteMessage(w, "Tour updated successfully", tour); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *TourHandler) SetStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		IsActive *bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.IsActive == nil {
		h.writeError(w, "SetStatus", apperrors.Validation(apperrors.FieldErrors{
			{Field: "isActive", Message: "isActive must be a boolean"},
		}))
		return
	}

	tour, err := h.service.SetStatus(r.Context(), ps.ByName("id"), *body.IsActive)
	if err != nil {
		h.writeError(w, "SetStatus", err)
		return
	}

	message := "Tour deactivated successfully"
	if *body.IsActive {
		message = "Tour activated successfully"
	}
	if err := httputil.WriteMessage(w, message, tour); err != nil {
		h.log.Error("failed to write success response", "handler", "SetStatus", "error", err)
	}
}

func (h *TourHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteMessage(w, "Tour deleted successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

// parseTourForm reads the multipart body: scalar form fields plus at most
// one "image" part. Numeric fields arrive as strings; a bad price surfaces
// as a validation error, a missing displayOrder falls back to 0, and a
// negative displayOrder is kept so validation rejects it.
func (h *TourHandler) parseTourForm(r *http.Request) (*model.Tour, *storage.Upload, error) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return nil, nil, apperrors.InvalidInput("Invalid multipart form data")
	}

	price := -1.0
	if v, err := strconv.ParseFloat(r.FormValue("price"), 64); err == nil {
		price = v
	}

	displayOrder := 0
	if v, err := strconv.Atoi(r.FormValue("displayOrder")); err == nil {
		displayOrder = v
	}

	tour := &model.Tour{
		Title:        r.FormValue("title"),
		Price:        price,
		Duration:     r.FormValue("duration"),
		Category:     r.FormValue("category"),
		Description:  r.FormValue("description"),
		DisplayOrder: displayOrder,
		IsActive:     r.FormValue("isActive") != "false",
	}

	image, err := h.extractImage(r)
	if err != nil {
		return nil, nil, err
	}

	return tour, image, nil
}

func (h *TourHandler) extractImage(r *http.Request) (*storage.Upload, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperrors.InvalidInput("Invalid image upload")
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		return nil, apperrors.InvalidInput("Image exceeds the 10MB limit")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.Internal("Failed to read uploaded image", err)
	}

	return &storage.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *TourHandler) writeError(w http.ResponseWriter, op string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}

func (h *TourHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/tours", h.List)
	router.GET("/api/tours/:id", h.Get)
	router.GET("/api/admin/tours", h.ListAdmin)
	router.POST("/api/tours", h.Create)
	router.PUT("/api/tours/:id", h.Update)
	router.PUT("/api/tours/:id/status", h.SetStatus)
	router.DELETE("/api/tours/:id", h.Delete)
}
