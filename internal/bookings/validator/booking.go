package validator

import (
	"errors"
	"fmt"
	"strings"

	"cabroster/pkg/logger"
	"cabroster/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return v.Message
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// Message returns the first failure, which is the one callers surface.
func (v ValidationErrors) Message() string {
	if len(v) == 0 {
		return ""
	}
	return v[0].Message
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// ValidateRequest checks a multi-date booking payload. Checks run in
// order so the caller always sees the first failure.
func (v *BookingValidator) ValidateRequest(req *model.BookingRequest) error {
	if req == nil || req.UserID == "" {
		return ValidationErrors{
			ValidationError{Field: "user_id", Message: "invalid booking request"},
		}
	}

	if len(req.BookingDates) == 0 {
		return ValidationErrors{
			ValidationError{Field: "booking_dates", Message: "no dates selected"},
		}
	}

	for _, d := range req.BookingDates {
		if d.IsZero() {
			return ValidationErrors{
				ValidationError{Field: "booking_dates", Message: "no dates selected"},
			}
		}
	}

	if req.ShiftID <= 0 || req.NodalPointID <= 0 {
		return ValidationErrors{
			ValidationError{Field: "shift_id", Message: "invalid shift or nodal point"},
		}
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return ValidationErrors{
			ValidationError{Field: "start_date", Message: "start/end date must be provided"},
		}
	}

	return nil
}

// ValidateRangeRequest checks a date-range booking payload.
func (v *BookingValidator) ValidateRangeRequest(req *model.DateRangeRequest) error {
	if req == nil || req.UserID == "" {
		return ValidationErrors{
			ValidationError{Field: "user_id", Message: "invalid booking request"},
		}
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return ValidationErrors{
			ValidationError{Field: "start_date", Message: "start/end date must be provided"},
		}
	}

	if !req.StartDate.Day().Before(req.EndDate.Day()) {
		return ValidationErrors{
			ValidationError{Field: "start_date", Message: "start date must be earlier than end date"},
		}
	}

	if req.ShiftID <= 0 || req.NodalPointID <= 0 {
		return ValidationErrors{
			ValidationError{Field: "shift_id", Message: "invalid shift or nodal point"},
		}
	}

	return nil
}

// ValidateBooking checks a fully-assembled booking document before it is
// persisted.
func (v *BookingValidator) ValidateBooking(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if booking.EndDate.Before(booking.StartDate) {
		return ValidationErrors{
			ValidationError{Field: "end_date", Message: "start date must be earlier than end date"},
		}
	}

	if !booking.Status.IsValid() {
		return ValidationErrors{
			ValidationError{Field: "status", Message: "invalid status"},
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
