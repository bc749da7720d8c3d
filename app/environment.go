package app

import (
	"github.com/sirupsen/logrus"

	"github.com/opensentry/loginui/loginform"
)

type EnvironmentConstants struct {
	RequestIdKey string
	LogKey       string

	SessionStoreKey     string // Name of the session cookie
	SessionFormStateKey string // Flash key of the login form state
}

type Environment struct {
	Constants *EnvironmentConstants

	Logger *logrus.Logger

	// Receives credentials once the login form validates.
	Authenticator loginform.Authenticator
}

func DefaultConstants() *EnvironmentConstants {
	return &EnvironmentConstants{
		RequestIdKey:        "RequestId",
		LogKey:              "log",
		SessionStoreKey:     "loginui",
		SessionFormStateKey: "login.state",
	}
}

// NewEnvironment wires the logger into the default authenticator, which only
// logs what was submitted.
func NewEnvironment(logger *logrus.Logger) *Environment {
	return &Environment{
		Constants:     DefaultConstants(),
		Logger:        logger,
		Authenticator: &loginform.LogAuthenticator{Log: logger},
	}
}
