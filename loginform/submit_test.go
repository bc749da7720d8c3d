package loginform

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAuthenticator struct {
	calls  []Credentials
	result AuthResult
	err    error
}

func (a *recordingAuthenticator) Authenticate(ctx context.Context, credentials Credentials) (AuthResult, error) {
	a.calls = append(a.calls, credentials)
	return a.result, a.err
}

func TestSubmitForwardsCredentials(t *testing.T) {
	auth := &recordingAuthenticator{result: AuthResult{Identifier: "a@b.com", Authenticated: true, RedirectTo: "/me"}}
	credentials := Credentials{Identifier: "a@b.com", Secret: "pw", Remember: true}

	result, err := Submit(context.Background(), auth, credentials)
	require.NoError(t, err)
	assert.Equal(t, auth.result, result)
	assert.Equal(t, []Credentials{credentials}, auth.calls)
}

func TestSubmitPassesAuthenticatorErrors(t *testing.T) {
	boom := errors.New("boom")
	auth := &recordingAuthenticator{err: boom}

	_, err := Submit(context.Background(), auth, Credentials{Identifier: "a@b.com", Secret: "pw"})
	assert.Equal(t, boom, err)
}

func TestSubmitRejectsIncompleteCredentials(t *testing.T) {
	auth := &recordingAuthenticator{}

	_, err := Submit(context.Background(), auth, Credentials{Identifier: "a@b.com"})
	assert.Equal(t, ErrIncompleteCredentials, err)

	_, err = Submit(context.Background(), auth, Credentials{Secret: "pw"})
	assert.Equal(t, ErrIncompleteCredentials, err)

	assert.Empty(t, auth.calls)
}

func TestSubmitWithoutAuthenticator(t *testing.T) {
	_, err := Submit(context.Background(), nil, Credentials{Identifier: "a@b.com", Secret: "pw"})
	assert.Equal(t, ErrNoAuthenticator, err)
}

func TestLogAuthenticatorRedactsSecret(t *testing.T) {
	logger, hook := test.NewNullLogger()
	auth := &LogAuthenticator{Log: logger}

	result, err := auth.Authenticate(context.Background(), Credentials{Identifier: "a@b.com", Secret: "hunter2", Remember: true})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", result.Identifier)
	assert.False(t, result.Authenticated)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "Login data", entry.Message)
	assert.Equal(t, "a@b.com", entry.Data["identifier"])
	assert.Equal(t, true, entry.Data["remember"])
	assert.Equal(t, "[redacted]", entry.Data["secret"])
}

func TestLogAuthenticatorHonorsCancelledContext(t *testing.T) {
	logger, hook := test.NewNullLogger()
	auth := &LogAuthenticator{Log: logger}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := auth.Authenticate(ctx, Credentials{Identifier: "a@b.com", Secret: "pw"})
	assert.Equal(t, context.Canceled, err)
	assert.Empty(t, hook.Entries)
}
