// Package credential provides acquisition and in-memory guarding of the
// operator's GitHub credentials. Credentials live only in process memory:
// nothing in this package writes the token to disk, environment variables,
// or log output.
package credential

import (
	"os"

	gherrors "github.com/quillhq/ghops/internal/errors"
)

const (
	// EnvGitHubToken is the environment variable for the GitHub token
	EnvGitHubToken = "GITHUB_TOKEN"

	// EnvGitHubUser is the environment variable for the GitHub username
	EnvGitHubUser = "GITHUB_USER"
)

// Source represents where the credential was obtained from
type Source string

const (
	SourceFlag   Source = "flag"
	SourceEnv    Source = "environment"
	SourcePrompt Source = "prompt"
	SourceNone   Source = "none"
)

// Credential is a username/token pair. The token is a secret bearer
// credential and must never leave process memory.
type Credential struct {
	Identity string
	secret   []byte
}

// Static builds a Credential from pre-supplied values (flags, constants).
// Fails with ErrMissingCredential when either field is empty.
func Static(identity, secret string) (Credential, error) {
	if identity == "" || secret == "" {
		return Credential{}, gherrors.ErrMissingCredential
	}
	return Credential{Identity: identity, secret: []byte(secret)}, nil
}

// Token returns the secret value
func (c Credential) Token() string {
	return string(c.secret)
}

// String implements fmt.Stringer with the secret masked, so accidental
// formatting of a Credential never leaks the token
func (c Credential) String() string {
	return c.Identity + " (" + MaskToken(string(c.secret)) + ")"
}

// Resolve obtains a credential using the following priority:
//  1. Explicit values (from --user/--token flags)
//  2. GITHUB_USER/GITHUB_TOKEN environment variables
//  3. Interactive terminal prompt
//
// The identity and token may come from different sources (e.g. username from
// config, token from environment).
func Resolve(flagUser, flagToken string) (Credential, Source, error) {
	identity := flagUser
	secret := flagToken
	source := SourceFlag

	if identity == "" {
		identity = os.Getenv(EnvGitHubUser)
	}
	if secret == "" {
		secret = os.Getenv(EnvGitHubToken)
		if secret != "" {
			source = SourceEnv
		}
	}

	if identity != "" && secret != "" {
		cred, err := Static(identity, secret)
		return cred, source, err
	}

	cred, err := Prompt(identity)
	if err != nil {
		return Credential{}, SourceNone, err
	}
	return cred, SourcePrompt, nil
}

// FormatSource returns a human-readable description of the credential source
func FormatSource(source Source) string {
	switch source {
	case SourceFlag:
		return "command line flag"
	case SourceEnv:
		return "environment variable (GITHUB_TOKEN)"
	case SourcePrompt:
		return "interactive prompt"
	default:
		return "unknown"
	}
}

// MaskToken returns a masked version of the token for display
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
