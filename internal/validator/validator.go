package validator

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// New creates a new validator instance with custom validations registered.
// This ensures consistent validation across the application and tests.
func New() *validator.Validate {
	v := validator.New()

	// Register custom "notblank" validator - rejects whitespace-only strings
	// This is used for fields like campaign titles that must have meaningful content
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true // Not a string, let other validators handle it
		}
		return strings.TrimSpace(str) != ""
	})

	// Register custom "ticketnumber" validator - fixed-position prize numbers
	// arrive as zero-padded digit strings; range checks happen later against
	// the campaign's number space.
	_ = v.RegisterValidation("ticketnumber", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true
		}
		if str == "" {
			return false
		}
		for _, r := range str {
			if !unicode.IsDigit(r) {
				return false
			}
		}
		return true
	})

	return v
}
