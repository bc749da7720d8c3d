package validators

import (
	"reflect"
	"strings"

	"gopkg.in/go-playground/validator.v9"
)

// New returns a validator with the custom rules of loginui registered.
// Errors report fields by their form tag so they can be keyed the same way
// the page names its inputs.
func New() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("notblank", NotBlank)
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(field.Name)
		}
		return name
	})
	return validate
}

// NotBlank fails empty and whitespace only strings, where required only
// fails empty ones.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
