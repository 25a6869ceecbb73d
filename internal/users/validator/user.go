package validator

import (
	"errors"
	"fmt"
	"strings"

	"cabroster/pkg/logger"
	"cabroster/pkg/model"
	"cabroster/pkg/sanitizer"

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

type UserValidator struct {
	validate *validator.Validate
	region   string
	logger   *logger.Logger
}

func NewUserValidator(region string, log *logger.Logger) *UserValidator {
	v := validator.New()

	log.Info("User validator initialized successfully")

	return &UserValidator{
		validate: v,
		region:   region,
		logger:   log,
	}
}

// ValidateRegistration checks a signup payload. The mobile number is
// assumed to already be normalized by the sanitizer.
func (v *UserValidator) ValidateRegistration(req *model.RegistrationRequest) error {
	if req == nil {
		return ValidationErrors{
			ValidationError{Field: "request", Message: "invalid registration request"},
		}
	}

	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !sanitizer.IsValidMobile(req.MobileNumber, v.region) {
		return ValidationErrors{
			ValidationError{Field: "mobile_number", Message: "invalid mobile number"},
		}
	}

	return nil
}

func (v *UserValidator) ValidateLogin(req *model.LoginRequest) error {
	if req == nil {
		return ValidationErrors{
			ValidationError{Field: "request", Message: "invalid login request"},
		}
	}

	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func (v *UserValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "email":
			message = "invalid email address"
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "eqfield":
			message = "passwords do not match"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
