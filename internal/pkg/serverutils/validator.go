package serverutils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a request struct against its `validate` tags and
// maps violations to a client-facing bad request error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewBadRequest("invalid request payload")
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, fieldErr.Field())
	}
	return NewBadRequest("invalid request payload: " + strings.Join(fields, ", "))
}
