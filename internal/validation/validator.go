package validation

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"budgetvault/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("iso_date", validateISODate)
	_ = v.RegisterValidation("month_key", validateMonthKey)
	_ = v.RegisterValidation("account_number", validateAccountNumber)
	_ = v.RegisterValidation("category_type", validateCategoryType)
	_ = v.RegisterValidation("sort_field", validateSortField)
	_ = v.RegisterValidation("sort_order", validateSortOrder)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateISODate validates a calendar date in YYYY-MM-DD form
func validateISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// validateMonthKey validates a budget month key in YYYY-MM form
func validateMonthKey(fl validator.FieldLevel) bool {
	return models.IsValidMonthKey(fl.Field().String())
}

// validateAccountNumber validates that an account number is 1-20 digits,
// matching what bank CSV exports actually carry
func validateAccountNumber(fl validator.FieldLevel) bool {
	accountNumber := fl.Field().String()
	if accountNumber == "" {
		return false
	}

	matched, _ := regexp.MatchString(`^\d{1,20}$`, accountNumber)
	return matched
}

// validateCategoryType validates that a category type is one of the allowed types
func validateCategoryType(fl validator.FieldLevel) bool {
	return models.IsValidCategoryType(fl.Field().String())
}

// validateSortField validates a review working-set sort field
func validateSortField(fl validator.FieldLevel) bool {
	return models.IsValidReviewSortField(fl.Field().String())
}

// validateSortOrder validates a sort order
func validateSortOrder(fl validator.FieldLevel) bool {
	return models.IsValidSortOrder(fl.Field().String())
}
