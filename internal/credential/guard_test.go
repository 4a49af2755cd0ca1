package credential

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gherrors "github.com/quillhq/ghops/internal/errors"
)

func TestGuardHoldAndToken(t *testing.T) {
	cred, err := Static("alice", "ghp_example")
	require.NoError(t, err)

	guard := Hold(cred)

	assert.Equal(t, "alice", guard.Identity())

	token, err := guard.Token()
	require.NoError(t, err)
	assert.Equal(t, "ghp_example", token)
	assert.False(t, guard.Released())
}

func TestGuardRelease(t *testing.T) {
	cred, err := Static("alice", "ghp_example")
	require.NoError(t, err)

	guard := Hold(cred)
	guard.Release()

	assert.True(t, guard.Released())

	_, err = guard.Token()
	assert.ErrorIs(t, err, gherrors.ErrCredentialReleased)

	// Identity stays readable after release
	assert.Equal(t, "alice", guard.Identity())
}

func TestGuardReleaseZeroesBuffer(t *testing.T) {
	cred, err := Static("alice", "ghp_example")
	require.NoError(t, err)

	guard := Hold(cred)
	buf := guard.secret
	guard.Release()

	for i, b := range buf {
		assert.Zerof(t, b, "byte %d not zeroed", i)
	}
	assert.Nil(t, guard.secret)
}

func TestGuardReleaseIsIdempotent(t *testing.T) {
	cred, err := Static("alice", "ghp_example")
	require.NoError(t, err)

	guard := Hold(cred)
	guard.Release()
	guard.Release()

	assert.True(t, guard.Released())
}

func TestGuardOwnsIndependentCopy(t *testing.T) {
	cred, err := Static("alice", "ghp_example")
	require.NoError(t, err)

	guard := Hold(cred)
	guard.Release()

	// Releasing the guard must not corrupt the source credential
	assert.Equal(t, "ghp_example", cred.Token())
}

func TestGuardTokenSource(t *testing.T) {
	cred, err := Static("alice", "ghp_example")
	require.NoError(t, err)

	guard := Hold(cred)
	ts := guard.TokenSource()

	token, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "ghp_example", token.AccessToken)

	guard.Release()

	_, err = ts.Token()
	assert.ErrorIs(t, err, gherrors.ErrCredentialReleased)
}

func TestRedactingFormatter(t *testing.T) {
	cred, err := Static("alice", "ghp_secret_token_value")
	require.NoError(t, err)
	guard := Hold(cred)

	logger := logrus.New()
	var out bytes.Buffer
	logger.SetOutput(&out)
	logger.SetFormatter(NewRedactingFormatter(&logrus.TextFormatter{DisableTimestamp: true}, guard))

	logger.WithField("token", "ghp_secret_token_value").Info("authenticating with ghp_secret_token_value")

	assert.NotContains(t, out.String(), "ghp_secret_token_value")
	assert.Contains(t, out.String(), redactedPlaceholder)
}

func TestRedactingFormatterAfterRelease(t *testing.T) {
	cred, err := Static("alice", "ghp_secret")
	require.NoError(t, err)
	guard := Hold(cred)
	guard.Release()

	logger := logrus.New()
	var out bytes.Buffer
	logger.SetOutput(&out)
	logger.SetFormatter(NewRedactingFormatter(&logrus.TextFormatter{DisableTimestamp: true}, guard))

	// Formatter keeps working once the secret is gone
	logger.Info("plain message")
	assert.Contains(t, out.String(), "plain message")
}
