package validators

import "github.com/go-playground/validator/v10"

// RequestValidator adapts go-playground/validator to echo.Validator
type RequestValidator struct {
	validate *validator.Validate
}

// NewValidator creates a validator instance shared across requests
func NewValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate runs struct validation on a bound request payload
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
