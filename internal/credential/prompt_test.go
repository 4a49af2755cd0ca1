package credential

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gherrors "github.com/quillhq/ghops/internal/errors"
)

func TestPrompt_ReadsIdentityAndSecret(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("alice\n"))
	var out bytes.Buffer
	readSecret := func() ([]byte, error) {
		return []byte("ghp_example"), nil
	}

	cred, err := prompt(in, &out, "", readSecret)

	require.NoError(t, err)
	assert.Equal(t, "alice", cred.Identity)
	assert.Equal(t, "ghp_example", cred.Token())
	assert.Contains(t, out.String(), "GitHub username")
	assert.Contains(t, out.String(), "input hidden")
}

func TestPrompt_KnownIdentitySkipsUsernamePrompt(t *testing.T) {
	in := bufio.NewReader(strings.NewReader(""))
	var out bytes.Buffer
	readSecret := func() ([]byte, error) {
		return []byte("ghp_example"), nil
	}

	cred, err := prompt(in, &out, "bob", readSecret)

	require.NoError(t, err)
	assert.Equal(t, "bob", cred.Identity)
	assert.NotContains(t, out.String(), "GitHub username")
}

func TestPrompt_TrimsWhitespace(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  alice  \n"))
	var out bytes.Buffer
	readSecret := func() ([]byte, error) {
		return []byte("ghp_example\n"), nil
	}

	cred, err := prompt(in, &out, "", readSecret)

	require.NoError(t, err)
	assert.Equal(t, "alice", cred.Identity)
	assert.Equal(t, "ghp_example", cred.Token())
}

func TestPrompt_AbortDuringUsername(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("")) // immediate EOF
	var out bytes.Buffer
	readSecret := func() ([]byte, error) {
		t.Fatal("secret reader should not be called")
		return nil, nil
	}

	_, err := prompt(in, &out, "", readSecret)

	assert.ErrorIs(t, err, gherrors.ErrInputAborted)
}

func TestPrompt_AbortDuringSecret(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("alice\n"))
	var out bytes.Buffer
	readSecret := func() ([]byte, error) {
		return nil, io.EOF
	}

	_, err := prompt(in, &out, "", readSecret)

	assert.ErrorIs(t, err, gherrors.ErrInputAborted)
}

func TestPrompt_EmptySecret(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("alice\n"))
	var out bytes.Buffer
	readSecret := func() ([]byte, error) {
		return []byte(""), nil
	}

	_, err := prompt(in, &out, "", readSecret)

	assert.ErrorIs(t, err, gherrors.ErrMissingCredential)
}
