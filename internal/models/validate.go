package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct-tag validation and converts the first failure
// into a ValidationError.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return &ValidationError{
			Field:   errs[0].Field(),
			Message: "failed validation on " + errs[0].Tag(),
		}
	}
	return err
}
