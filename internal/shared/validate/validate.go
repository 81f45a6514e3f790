package validate

import (
	v10 "github.com/go-playground/validator/v10"
)

var v = v10.New(v10.WithRequiredStructEnabled())

// Struct validates the `validate:` tags on a payload struct.
func Struct(s any) error {
	return v.Struct(s)
}
