package validator

import (
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "voyago/pkg/errors"
	"voyago/pkg/logger"
	"voyago/pkg/model"
)

// phoneRegex accepts international numbers with optional +, spaces, dashes
// and parentheses. The public form does no client-side normalization beyond
// trimming, so the check stays permissive.
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{6,19}$`)

// BookingValidator checks every field constraint of a booking submission
// and reports the full ordered list of violations.
type BookingValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		log.Fatal("Failed to register 'phone' validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		log:      log,
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// Validate runs the struct constraints plus the date rule: the travel date
// must not fall before today, compared at midnight so a booking for later
// today is accepted regardless of time of day.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if booking.TravelDate.Before(StartOfToday()) {
		return apperrors.FieldErrors{
			{Field: "travelDate", Message: "Travel date cannot be in the past"},
		}
	}

	return nil
}

// StartOfToday is the midnight-normalized lower bound for travel dates.
func StartOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func translateValidationErrors(errs validator.ValidationErrors) apperrors.FieldErrors {
	var fieldErrors apperrors.FieldErrors

	for _, err := range errs {
		var field, message string

		switch err.StructField() {
		case "Name":
			field, message = "name", "Name must be 2-100 characters"
		case "Phone":
			field, message = "phone", "Invalid phone number"
		case "Email":
			field, message = "email", "Invalid email address"
		case "Adults":
			field, message = "adults", "Adults must be between 1-20"
		case "Children":
			field, message = "children", "Children must be between 0-20"
		case "TravelDate":
			field, message = "travelDate", "Invalid date format"
		case "ConfirmTrip":
			field, message = "confirmTrip", "Trip confirmation is required"
		case "Message":
			field, message = "message", "Message too long"
		case "Status":
			field, message = "status", "Invalid status"
		default:
			field, message = err.Field(), err.Error()
		}

		fieldErrors = append(fieldErrors, apperrors.FieldError{Field: field, Message: message})
	}

	return fieldErrors
}
