package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is returned when a DTO fails struct validation.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New()

// Validate checks input against its validate struct tags.
func Validate[T any](input T) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, describe(err))
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	return fmt.Sprintf("%s is %s", fe.Field(), fe.Tag())
}
