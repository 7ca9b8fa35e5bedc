package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "voyago/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "not found",
			err:         apperrors.NotFound("Booking"),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Booking not found",
		},
		{
			name:        "conflict maps to 400",
			err:         apperrors.Conflict("Tour title already exists"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Tour title already exists",
		},
		{
			name:        "validation maps to 400",
			err:         apperrors.Validation(apperrors.FieldErrors{{Field: "name", Message: "Name must be 2-100 characters"}}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation failed",
		},
		{
			name:        "unknown error becomes generic 500",
			err:         errors.New("mongo exploded"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := WriteError(w, tt.err); err != nil {
				t.Fatalf("WriteError() error = %v", err)
			}

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body.Success {
				t.Error("success should be false")
			}
			if body.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
			}
		})
	}
}

func TestWriteErrorIncludesFieldList(t *testing.T) {
	w := httptest.NewRecorder()
	fields := apperrors.FieldErrors{
		{Field: "name", Message: "Name must be 2-100 characters"},
		{Field: "email", Message: "Invalid email address"},
	}
	if err := WriteError(w, apperrors.Validation(fields)); err != nil {
		t.Fatalf("WriteError() error = %v", err)
	}

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(body.Errors) != 2 {
		t.Fatalf("errors length = %d, want 2", len(body.Errors))
	}
	if body.Errors[0].Field != "name" || body.Errors[1].Field != "email" {
		t.Errorf("field order not preserved: %+v", body.Errors)
	}
}

func TestWritePaginated(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WritePaginated(w, []string{"a", "b"}, NewPagination(2, 50, 120)); err != nil {
		t.Fatalf("WritePaginated() error = %v", err)
	}

	var body PaginatedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if !body.Success {
		t.Error("success should be true")
	}
	if body.Pagination.Pages != 3 {
		t.Errorf("pages = %d, want 3", body.Pagination.Pages)
	}
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WriteCreated(w, "Tour created successfully!", map[string]string{"id": "x"}); err != nil {
		t.Fatalf("WriteCreated() error = %v", err)
	}
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
}
