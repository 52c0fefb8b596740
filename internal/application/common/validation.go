package common

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest checks struct validation tags on a command and converts the
// first failure into a *shared.ValidationError with a user-facing message
func ValidateRequest(request interface{}) error {
	err := structValidator().Struct(request)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	e := validationErrs[0]
	return shared.NewValidationError(strings.ToLower(e.Field()), validationMessage(e))
}

func validationMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s is invalid", field)
	case "min":
		return fmt.Sprintf("%s is too short", field)
	case "max":
		return fmt.Sprintf("%s is too long", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, e.Tag())
	}
}
