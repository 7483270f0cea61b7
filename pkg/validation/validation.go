// Package validation converts raw request input into typed, constraint-checked
// structures before any service logic runs.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"fermentlog-backend/pkg/errors"
)

var validate = newValidator()

// newValidator reports violations under the field's JSON name so error
// details line up with the request body the client sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateStruct checks a request struct against its validation tags. On
// failure it returns a validation AppError whose Details enumerate every
// violated field with its reason, not just the first.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewInternalError("validation failed").WithCause(err)
	}

	details := make(map[string]interface{}, len(validationErrors))
	for _, e := range validationErrors {
		details[e.Field()] = fieldReason(e)
	}

	return errors.NewValidationError("request validation failed").WithDetails(details)
}

// MissingPathParam reports an absent path segment. This is a routing mistake
// rather than bad user input, so it carries a distinct type, though it still
// surfaces as a 400-class response.
func MissingPathParam(name string) error {
	return errors.NewBadRequestError(fmt.Sprintf("missing path parameter %q", name))
}

func fieldReason(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(e.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "datetime":
		return "must be a valid RFC 3339 timestamp"
	case "dive":
		return "contains invalid values"
	default:
		return "is invalid"
	}
}
