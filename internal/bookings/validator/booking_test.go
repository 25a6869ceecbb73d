package validator

import (
	"testing"
	"time"

	"cabroster/pkg/logger"
	"cabroster/pkg/model"
)

func newTestValidator(t *testing.T) *BookingValidator {
	t.Helper()
	log := logger.New(logger.Config{Level: logger.ERROR})
	return NewBookingValidator(log)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.BookingRequest
		wantErr string
	}{
		{
			name:    "nil request",
			req:     nil,
			wantErr: "invalid booking request",
		},
		{
			name: "missing user",
			req: &model.BookingRequest{
				BookingDates: []model.Date{model.NewDate(2025, time.January, 6)},
				ShiftID:      1,
				NodalPointID: 1,
			},
			wantErr: "invalid booking request",
		},
		{
			name: "no dates",
			req: &model.BookingRequest{
				UserID:       "u-1",
				ShiftID:      1,
				NodalPointID: 1,
			},
			wantErr: "no dates selected",
		},
		{
			name: "zero date in list",
			req: &model.BookingRequest{
				UserID:       "u-1",
				BookingDates: []model.Date{{}},
				ShiftID:      1,
				NodalPointID: 1,
			},
			wantErr: "no dates selected",
		},
		{
			name: "missing shift",
			req: &model.BookingRequest{
				UserID:       "u-1",
				BookingDates: []model.Date{model.NewDate(2025, time.January, 6)},
				NodalPointID: 1,
			},
			wantErr: "invalid shift or nodal point",
		},
		{
			name: "missing nodal point",
			req: &model.BookingRequest{
				UserID:       "u-1",
				BookingDates: []model.Date{model.NewDate(2025, time.January, 6)},
				ShiftID:      2,
			},
			wantErr: "invalid shift or nodal point",
		},
		{
			name: "missing start date",
			req: &model.BookingRequest{
				UserID:       "u-1",
				BookingDates: []model.Date{model.NewDate(2025, time.January, 6)},
				ShiftID:      2,
				NodalPointID: 3,
				EndDate:      model.NewDate(2025, time.January, 7),
			},
			wantErr: "start/end date must be provided",
		},
		{
			name: "missing end date",
			req: &model.BookingRequest{
				UserID:       "u-1",
				BookingDates: []model.Date{model.NewDate(2025, time.January, 6)},
				ShiftID:      2,
				NodalPointID: 3,
				StartDate:    model.NewDate(2025, time.January, 6),
			},
			wantErr: "start/end date must be provided",
		},
		{
			name: "valid request",
			req: &model.BookingRequest{
				UserID:       "u-1",
				BookingDates: []model.Date{model.NewDate(2025, time.January, 6), model.NewDate(2025, time.January, 7)},
				ShiftID:      2,
				NodalPointID: 3,
				StartDate:    model.NewDate(2025, time.January, 6),
				EndDate:      model.NewDate(2025, time.January, 7),
			},
		},
	}

	v := newTestValidator(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRequest(tt.req)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error %q, got nil", tt.wantErr)
			}

			verrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if verrs.Message() != tt.wantErr {
				t.Errorf("expected message %q, got %q", tt.wantErr, verrs.Message())
			}
		})
	}
}

func TestValidateRangeRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.DateRangeRequest
		wantErr string
	}{
		{
			name:    "nil request",
			req:     nil,
			wantErr: "invalid booking request",
		},
		{
			name: "missing start date",
			req: &model.DateRangeRequest{
				UserID:       "u-1",
				EndDate:      model.NewDate(2025, time.January, 10),
				ShiftID:      1,
				NodalPointID: 1,
			},
			wantErr: "start/end date must be provided",
		},
		{
			name: "missing end date",
			req: &model.DateRangeRequest{
				UserID:       "u-1",
				StartDate:    model.NewDate(2025, time.January, 6),
				ShiftID:      1,
				NodalPointID: 1,
			},
			wantErr: "start/end date must be provided",
		},
		{
			name: "start equals end",
			req: &model.DateRangeRequest{
				UserID:       "u-1",
				StartDate:    model.NewDate(2025, time.January, 6),
				EndDate:      model.NewDate(2025, time.January, 6),
				ShiftID:      1,
				NodalPointID: 1,
			},
			wantErr: "start date must be earlier than end date",
		},
		{
			name: "start after end",
			req: &model.DateRangeRequest{
				UserID:       "u-1",
				StartDate:    model.NewDate(2025, time.January, 10),
				EndDate:      model.NewDate(2025, time.January, 6),
				ShiftID:      1,
				NodalPointID: 1,
			},
			wantErr: "start date must be earlier than end date",
		},
		{
			name: "invalid shift",
			req: &model.DateRangeRequest{
				UserID:       "u-1",
				StartDate:    model.NewDate(2025, time.January, 6),
				EndDate:      model.NewDate(2025, time.January, 10),
				NodalPointID: 1,
			},
			wantErr: "invalid shift or nodal point",
		},
		{
			name: "valid range",
			req: &model.DateRangeRequest{
				UserID:       "u-1",
				StartDate:    model.NewDate(2025, time.January, 6),
				EndDate:      model.NewDate(2025, time.January, 10),
				ShiftID:      1,
				NodalPointID: 2,
			},
		},
	}

	v := newTestValidator(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRangeRequest(tt.req)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error %q, got nil", tt.wantErr)
			}

			verrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if verrs.Message() != tt.wantErr {
				t.Errorf("expected message %q, got %q", tt.wantErr, verrs.Message())
			}
		})
	}
}

func TestValidateBooking(t *testing.T) {
	v := newTestValidator(t)

	valid := &model.Booking{
		ID:           "b-1",
		UserID:       "u-1",
		ShiftID:      1,
		NodalPointID: 2,
		BookingDate:  time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
		StartDate:    time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		Status:       model.StatusBooked,
	}

	if err := v.ValidateBooking(valid); err != nil {
		t.Fatalf("expected valid booking, got %v", err)
	}

	reversed := *valid
	reversed.StartDate, reversed.EndDate = reversed.EndDate, reversed.StartDate
	if err := v.ValidateBooking(&reversed); err == nil {
		t.Error("expected error for reversed date range")
	}

	badStatus := *valid
	badStatus.Status = "approved"
	if err := v.ValidateBooking(&badStatus); err == nil {
		t.Error("expected error for lowercase status")
	}

	missingUser := *valid
	missingUser.UserID = ""
	if err := v.ValidateBooking(&missingUser); err == nil {
		t.Error("expected error for missing user")
	}
}
