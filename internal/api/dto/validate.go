package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks the struct tags of a request payload.
func Validate(payload any) error {
	return validate.Struct(payload)
}
