package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the validator tags on a request struct and returns
// a field -> failure map, or nil if the input is valid. Every endpoint
// validates its body with this before touching the database.
func ValidateStruct(input interface{}) map[string]string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		errs[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return errs
}
