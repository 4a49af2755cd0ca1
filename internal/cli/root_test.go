package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/ghops/internal/credential"
)

func TestRootCommandFlags(t *testing.T) {
	t.Run("has persistent flags", func(t *testing.T) {
		for _, name := range []string{"verbose", "user", "token", "endpoint", "timeout"} {
			flag := rootCmd.PersistentFlags().Lookup(name)
			assert.NotNil(t, flag, "missing persistent flag %q", name)
		}
	})

	t.Run("has expected subcommands", func(t *testing.T) {
		names := make(map[string]bool)
		for _, cmd := range rootCmd.Commands() {
			names[cmd.Name()] = true
		}

		for _, name := range []string{"repo", "file", "workflow", "gist", "user", "notification", "issue", "limits", "menu", "version"} {
			assert.True(t, names[name], "missing subcommand %q", name)
		}
	})
}

func TestReleaseCredentials(t *testing.T) {
	t.Run("safe with no credentials resolved", func(t *testing.T) {
		originalGuard := guard
		guard = nil
		defer func() { guard = originalGuard }()

		assert.NotPanics(t, releaseCredentials)
	})

	t.Run("zeroes the guarded secret", func(t *testing.T) {
		originalGuard := guard
		defer func() { guard = originalGuard }()

		cred, err := credential.Static("alice", "ghp_example1234")
		require.NoError(t, err)
		guard = credential.Hold(cred)

		releaseCredentials()

		assert.True(t, guard.Released())
		_, err = guard.Token()
		assert.Error(t, err)
	})
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger())
}
