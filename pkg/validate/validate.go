package validate

import (
	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the `validate` tags of a request DTO. Returns the first
// validation error, or nil.
func Struct(s any) error {
	return v.Struct(s)
}
