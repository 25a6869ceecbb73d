package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cabroster/pkg/logger"
	"cabroster/pkg/middleware"
	"cabroster/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	availableDatesFunc func(ctx context.Context, userID string, weeks int) ([]string, error)
}

func (m *mockBookingService) Book(ctx context.Context, req *model.BookingRequest) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) BookRange(ctx context.Context, req *model.DateRangeRequest) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.BookingView, int64, error) {
	return []*model.BookingView{}, 0, nil
}

func (m *mockBookingService) GetStatus(ctx context.Context, id string) (*model.BookingView, error) {
	return nil, nil
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) AvailableDates(ctx context.Context, userID string, weeks int) ([]string, error) {
	if m.availableDatesFunc != nil {
		return m.availableDatesFunc(ctx, userID, weeks)
	}
	return []string{}, nil
}

func (m *mockBookingService) Export(ctx context.Context) ([]byte, error) {
	return nil, nil
}

func TestAvailableDatesWeeksParameter(t *testing.T) {
	log := logger.New(logger.Config{Level: logger.ERROR})

	tests := []struct {
		name           string
		queryString    string
		expectHTTPCode int
		expectWeeks    int
	}{
		{
			name:           "no weeks falls back to default window",
			queryString:    "",
			expectHTTPCode: http.StatusOK,
			expectWeeks:    0,
		},
		{
			name:           "explicit weeks forwarded to service",
			queryString:    "?weeks=2",
			expectHTTPCode: http.StatusOK,
			expectWeeks:    2,
		},
		{
			name:           "zero weeks rejected",
			queryString:    "?weeks=0",
			expectHTTPCode: http.StatusBadRequest,
		},
		{
			name:           "negative weeks rejected",
			queryString:    "?weeks=-3",
			expectHTTPCode: http.StatusBadRequest,
		},
		{
			name:           "non-numeric weeks rejected",
			queryString:    "?weeks=abc",
			expectHTTPCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var receivedWeeks int
			mockService := &mockBookingService{
				availableDatesFunc: func(ctx context.Context, userID string, weeks int) ([]string, error) {
					called = true
					receivedWeeks = weeks
					return []string{"2025-01-06"}, nil
				},
			}

			h := &BookingHandler{
				service: mockService,
				log:     log,
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/available-dates"+tt.queryString, nil)
			ctx := context.WithValue(req.Context(), middleware.UserIDKey, "u-1")
			req = req.WithContext(ctx)
			w := httptest.NewRecorder()

			h.AvailableDates(w, req, httprouter.Params{})

			if w.Code != tt.expectHTTPCode {
				t.Errorf("expected status %d, got %d", tt.expectHTTPCode, w.Code)
			}

			if tt.expectHTTPCode == http.StatusOK {
				if !called {
					t.Fatal("expected service to be called")
				}
				if receivedWeeks != tt.expectWeeks {
					t.Errorf("expected service to receive weeks=%d, got %d", tt.expectWeeks, receivedWeeks)
				}
				return
			}

			if called {
				t.Error("service must not be called for a rejected weeks parameter")
			}
		})
	}
}
