package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"voyago/internal/bookings/service"
	apperrors "voyago/pkg/errors"
	"voyago/pkg/httputil"
	"voyago/pkg/logger"
	"voyago/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// bookingRequest is the public form payload. The travel date arrives as an
// ISO string and gets parsed before the model is validated.
type bookingRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
	TravelDate  string `json:"travelDate"`
	ConfirmTrip string `json:"confirmTrip"`
	TourID      string `json:"tourId"`
	Message     string `json:"message"`
}

// bookingCreatedResponse carries the confirmation under a "booking" key,
// which is what the public form's success screen reads.
type bookingCreatedResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Booking *model.BookingConfirmation `json:"booking"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	travelDate, ok := parseTravelDate(req.TravelDate)
	if !ok {
		h.writeError(w, "Create", apperrors.Validation(apperrors.FieldErrors{
			{Field: "travelDate", Message: "Invalid date format"},
		}))
		return
	}

	booking := &model.Booking{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Adults:      req.Adults,
		Children:    req.Children,
		TravelDate:  travelDate,
		ConfirmTrip: req.ConfirmTrip,
		TourID:      req.TourID,
		Message:     req.Message,
	}

	confirmation, err := h.service.Create(r.Context(), booking)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusCreated, bookingCreatedResponse{
		Success: true,
		Message: "Booking submitted successfully! We will contact you soon.",
		Booking: confirmation,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	params := httputil.ExtractListParams(r)

	bookings, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	pagination := httputil.NewPagination(params.Page, params.Limit, total)
	if err := httputil.WritePaginated(w, bookings, pagination); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "error", err)
	}
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "error", err)
	}
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, "UpdateStatus", apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), body.Status)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteMessage(w, "Booking status updated successfully", booking); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteMessage(w, "Booking deleted successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

// parseTravelDate accepts RFC 3339 timestamps and bare dates, the two forms
// the booking form submits.
func parseTravelDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (h *BookingHandler) writeError(w http.ResponseWriter, op string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", h.Create)
	router.GET("/api/bookings", h.List)
	router.GET("/api/bookings/:id", h.Get)
	router.PUT("/api/bookings/:id/status", h.UpdateStatus)
	router.DELETE("/api/bookings/:id", h.Delete)
}
