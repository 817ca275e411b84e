package handlers

import (
	"github.com/go-playground/validator/v10"
)

// ParseValidationErrors converts binding-layer validator errors into the
// plain messages the intake forms display.
func ParseValidationErrors(err error) []string {
	var messages []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			messages = append(messages, getErrorMessage(fieldError))
		}
	}

	return messages
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}
