package catalogsync

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError rejects a write before anything is persisted.
type ValidationError struct {
	Entity  string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validationError(entity string, err error, messages map[string]string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Entity: entity, Message: err.Error(), Err: err}
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			parts = append(parts, msg)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return &ValidationError{Entity: entity, Message: strings.Join(parts, "; "), Err: err}
}
