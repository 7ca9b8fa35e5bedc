package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "voyago/pkg/errors"
	"voyago/pkg/model"
)

// TourValidator checks every field constraint of a tour and reports the
// full ordered list of violations, independent of the transport layer.
type TourValidator struct {
	validate *validator.Validate
}

func NewTourValidator() *TourValidator {
	return &TourValidator{
		validate: validator.New(),
	}
}

func (v *TourValidator) Validate(tour *model.Tour) error {
	if err := v.validate.Struct(tour); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// translateValidationErrors maps validator tags to the messages the admin
// UI shows next to each form field.
func translateValidationErrors(errs validator.ValidationErrors) apperrors.FieldErrors {
	var fieldErrors apperrors.FieldErrors

	for _, err := range errs {
		var field, message string

		switch err.StructField() {
		case "Title":
			field, message = "title", "Title must be 3-100 characters"
		case "Price":
			field, message = "price", "Price must be a positive number"
		case "Duration":
			field, message = "duration", "Invalid duration"
		case "Category":
			field, message = "category", "Invalid category"
		case "Description":
			field, message = "description", "Description must be 10-2000 characters"
		case "ImageURL":
			field, message = "imageUrl", "Tour image is required"
		case "DisplayOrder":
			field, message = "displayOrder", "Display order must be a positive integer"
		default:
			field, message = err.Field(), err.Error()
		}

		fieldErrors = append(fieldErrors, apperrors.FieldError{Field: field, Message: message})
	}

	return fieldErrors
}
