package credentials

// Values of the action field on the login form. An empty action means sign in.
const (
	ACTION_SIGNIN           = "signin"
	ACTION_TOGGLE_PASSWORD  = "toggle-password"
	ACTION_CLEAR_IDENTIFIER = "clear-identifier"
)

// Query parameter of the validate endpoint naming the one field to check.
const VALIDATE_FIELD_KEY = "field"

const LOGIN_FAILED = "Unable to sign in"
