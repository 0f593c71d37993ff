package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates obj against its `validate` struct tags.
func ValidateStruct(obj interface{}) error {
	return validate.Struct(obj)
}
