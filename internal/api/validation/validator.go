package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/osa911/formrelay/internal/contactform"
)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("relayemail", validateRelayEmail)
}

// RegisterBindingValidators adds the custom tags to gin's binding engine.
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return RegisterValidators(v)
}

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	if err := RegisterValidators(v); err != nil {
		// Only fails on an empty tag name or nil func.
		panic(err)
	}
	return v
}

// validateRelayEmail accepts what the contact form accepts as an email.
func validateRelayEmail(fl validator.FieldLevel) bool {
	return contactform.CheckEmail(fl.Field().String()) == contactform.EmailOK
}

// ValidationError represents a validation error
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// FormatValidationError formats validation errors into a user-friendly response
func FormatValidationError(err error) []ValidationError {
	var out []ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			out = append(out, ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Param(),
			})
		}
	}
	return out
}

// Describe renders validation errors as one line, for CLI output.
func Describe(err error) string {
	fields := FormatValidationError(err)
	if len(fields) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Value != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", f.Field, f.Tag, f.Value))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", f.Field, f.Tag))
		}
	}
	return strings.Join(parts, "; ")
}
