package loginform

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoAuthenticator       = errors.New("loginform: no authenticator configured")
	ErrIncompleteCredentials = errors.New("loginform: identifier and secret are required")
)

type AuthResult struct {
	Identifier    string
	Authenticated bool
	RedirectTo    string // Empty means the caller decides where to go next.
}

// Authenticator is whatever decides if credentials are good. loginui ships
// no real one.
type Authenticator interface {
	Authenticate(ctx context.Context, credentials Credentials) (AuthResult, error)
}

// Submit hands validated credentials to the authenticator.
func Submit(ctx context.Context, authenticator Authenticator, credentials Credentials) (AuthResult, error) {
	if authenticator == nil {
		return AuthResult{}, ErrNoAuthenticator
	}
	if credentials.Identifier == "" || credentials.Secret == "" {
		return AuthResult{}, ErrIncompleteCredentials
	}
	return authenticator.Authenticate(ctx, credentials)
}

// LogAuthenticator logs the submitted credentials and returns. The secret is
// never written to the log.
type LogAuthenticator struct {
	Log logrus.FieldLogger
}

func (a *LogAuthenticator) Authenticate(ctx context.Context, credentials Credentials) (AuthResult, error) {
	if err := ctx.Err(); err != nil {
		return AuthResult{}, err
	}

	a.Log.WithFields(logrus.Fields{
		"func":       "LogAuthenticator.Authenticate",
		"identifier": credentials.Identifier,
		"remember":   credentials.Remember,
		"secret":     "[redacted]",
	}).Info("Login data")

	return AuthResult{Identifier: credentials.Identifier}, nil
}
