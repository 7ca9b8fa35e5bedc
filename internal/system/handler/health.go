package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"

	"voyago/pkg/httputil"
	"voyago/pkg/logger"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Database  string    `json:"database,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RootResponse is the banner served at / so a browser hit of the bare API
// host shows something more useful than a 404.
type RootResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Endpoints map[string]string `json:"endpoints"`
}

type SystemHandler struct {
	mongoClient *mongo.Client
	log         *logger.Logger
}

func NewSystemHandler(mongoClient *mongo.Client, log *logger.Logger) *SystemHandler {
	return &SystemHandler{
		mongoClient: mongoClient,
		log:         log,
	}
}

func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, RootResponse{
		Status:    "Active",
		Message:   "Voyago API is running",
		Timestamp: time.Now().UTC(),
		Endpoints: map[string]string{
			"tours":    "/api/tours",
			"bookings": "/api/bookings",
			"health":   "/health",
		},
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Root", "error", err)
	}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Message:   "Server is running",
		Timestamp: time.Now().UTC(),
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "error", err)
	}
}

func (h *SystemHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.mongoClient.Ping(ctx, nil); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "unavailable",
			Database:  "error",
			Timestamp: time.Now().UTC(),
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Database:  "ok",
		Timestamp: time.Now().UTC(),
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "error", err)
	}
}

func (h *SystemHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
