package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "booking not found",
			},
			expected: "NOT_FOUND: booking not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "failed to create booking",
				Err:     errors.New("connection refused"),
			},
			expected: "INTERNAL_ERROR: failed to create booking (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWrap_Unwrap(t *testing.T) {
	originalErr := errors.New("write conflict")
	wrapped := Wrap(originalErr, CodeInternal, "transaction failed", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if unwrapped := errors.Unwrap(wrapped); unwrapped != originalErr {
		t.Errorf("Unwrap() should return the original error")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("booking"), CodeNotFound, http.StatusNotFound},
		{"invalid input", InvalidInput("no dates selected"), CodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("invalid registration", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"unauthorized", Unauthorized("user is awaiting approval"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("admin role required"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("a booking already exists for 2025-01-06"), CodeConflict, http.StatusConflict},
		{"internal", Internal("failed to list bookings", errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("booking", "64b0c8a2e13f4a0001a1b2c3")

	if err.Message != "booking not found" {
		t.Errorf("expected message 'booking not found', got %s", err.Message)
	}
	if err.Details["id"] != "64b0c8a2e13f4a0001a1b2c3" {
		t.Errorf("expected id detail, got %v", err.Details["id"])
	}
	if err.Details["resource"] != "booking" {
		t.Errorf("expected resource detail, got %v", err.Details["resource"])
	}
}

func TestWithDetails(t *testing.T) {
	err := InvalidInput("invalid shift or nodal point").WithDetails(map[string]any{
		"shift_id":       0,
		"nodal_point_id": 3,
	})

	if err.Details["shift_id"] != 0 {
		t.Errorf("expected shift_id detail, got %v", err.Details["shift_id"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("booking")
	if got := AsAppError(appErr); got != appErr {
		t.Errorf("AsAppError() should return the same AppError")
	}

	regularErr := errors.New("regular error")
	got := AsAppError(regularErr)
	if got.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap a plain error as internal, got %s", got.Code)
	}
	if got.Err != regularErr {
		t.Errorf("AsAppError() should keep the original error")
	}

	if !IsAppError(appErr) {
		t.Errorf("IsAppError() should be true for AppError")
	}
	if IsAppError(regularErr) {
		t.Errorf("IsAppError() should be false for a plain error")
	}
}
