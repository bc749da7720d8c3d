// Package loginform holds the state and rules of the login form: what the
// user typed, which fields are wrong, and the credentials handed on to
// authentication once the form is valid.
package loginform

import (
	"gopkg.in/go-playground/validator.v9"

	"github.com/opensentry/loginui/validators"
)

// Field names as used by the page inputs and in error maps.
const (
	FieldIdentifier = "identifier"
	FieldSecret     = "secret"
	FieldRemember   = "remember"

	// FieldForm keys errors that belong to no single input.
	FieldForm = "form"
)

// Input is the raw submission. A nil Remember means the user never touched
// the checkbox.
type Input struct {
	Identifier string `form:"identifier" json:"identifier" validate:"notblank,email"`
	Secret     string `form:"secret" json:"secret" validate:"required"`
	Remember   *bool  `form:"remember" json:"remember,omitempty"`
}

type Credentials struct {
	Identifier string
	Secret     string
	Remember   bool
}

// ValidationResult is Valid when Errors is empty, in which case Credentials
// is populated. Otherwise Credentials is the zero value.
type ValidationResult struct {
	Credentials Credentials
	Errors      map[string]string
}

func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// State is what the page needs to redraw the form. The secret is never part
// of it.
type State struct {
	Identifier   string
	Remember     bool
	ShowPassword bool
	Errors       map[string]string
}

func DefaultState() State {
	return State{Remember: true}
}

var validate = validators.New()

// messages maps field and failing rule to the text shown under the input.
var messages = map[string]map[string]string{
	FieldIdentifier: {
		"notblank": "Email is required",
		"required": "Email is required",
		"email":    "Invalid email address",
	},
	FieldSecret: {
		"required": "Password is required",
	},
}

func message(field string, rule string) string {
	if m, ok := messages[field][rule]; ok {
		return m
	}
	return "Invalid"
}

// RememberOrDefault resolves an unset remember flag to true.
func RememberOrDefault(remember *bool) bool {
	if remember == nil {
		return true
	}
	return *remember
}

func Validate(input Input) ValidationResult {
	errs := map[string]string{}

	err := validate.Struct(input)
	if err != nil {
		// Only InvalidValidationError is not a ValidationErrors, and Input is always a struct.
		for _, e := range err.(validator.ValidationErrors) {
			if _, exists := errs[e.Field()]; exists {
				continue
			}
			errs[e.Field()] = message(e.Field(), e.Tag())
		}
	}

	if len(errs) > 0 {
		return ValidationResult{Errors: errs}
	}

	return ValidationResult{
		Credentials: Credentials{
			Identifier: input.Identifier,
			Secret:     input.Secret,
			Remember:   RememberOrDefault(input.Remember),
		},
	}
}

// ValidateField returns the error of field alone, keyed like
// ValidationResult.Errors. An empty map says nothing about the other fields;
// only Validate decides if the form as a whole is valid. An unknown field
// reports nothing.
func ValidateField(field string, input Input) map[string]string {
	errs := map[string]string{}
	if msg, ok := Validate(input).Errors[field]; ok {
		errs[field] = msg
	}
	return errs
}

func TogglePasswordVisibility(current bool) bool {
	return !current
}

// ClearIdentifier empties the identifier and forgets any error about it.
func ClearIdentifier(state State) State {
	state.Identifier = ""
	if len(state.Errors) > 0 {
		errs := make(map[string]string, len(state.Errors))
		for k, v := range state.Errors {
			if k != FieldIdentifier {
				errs[k] = v
			}
		}
		state.Errors = errs
	}
	return state
}
