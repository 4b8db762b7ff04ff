package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var periodKeyPattern = regexp.MustCompile(`^[0-9]{4}(0[1-9]|1[0-2])$`)

// ValidatePeriodKey accepts YYYYMM period keys.
func ValidatePeriodKey(fl validator.FieldLevel) bool {
	return periodKeyPattern.MatchString(fl.Field().String())
}

// RegisterValidators adds the custom tags used by the request DTOs.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("periodkey", ValidatePeriodKey)
}
