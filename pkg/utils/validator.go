package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// seatPattern matches row letters A-H followed by columns 1-10, no
// leading zero. Row letter is case-insensitive.
var seatPattern = regexp.MustCompile(`^[A-H](10|[1-9])$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("seatcode", func(fl validator.FieldLevel) bool {
		return ValidSeat(fl.Field().String())
	})
	return v
}

// ValidSeat reports whether seat is a well-formed seat code (A1-H10).
func ValidSeat(seat string) bool {
	return seatPattern.MatchString(strings.ToUpper(strings.TrimSpace(seat)))
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "seatcode":
		return "Seats must be A1-H10"
	case "eqfield":
		return fmt.Sprintf("Must match %s", err.Param())
	case "uuid":
		return "Must be a valid UUID"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
