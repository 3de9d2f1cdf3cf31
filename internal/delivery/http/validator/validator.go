// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	govalidator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator wraps a shared validate instance for struct tag validation.
type Validator struct {
	validate *govalidator.Validate
}

// New creates the echo validator.
func New() *Validator {
	return &Validator{validate: govalidator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}
