package handlers

import (
	"budgetvault/internal/validation"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the shared validator for Echo's Validator interface
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator creates a new Echo-compatible validator
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{
		validator: validation.NewValidator().GetValidate(),
	}
}

// Validate validates a struct using the shared validation rules
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
