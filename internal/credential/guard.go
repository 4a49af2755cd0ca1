package credential

import (
	"sync"

	"golang.org/x/oauth2"

	gherrors "github.com/quillhq/ghops/internal/errors"
)

// Guard owns a credential for the lifetime of the process. It is the only
// place the secret lives: the guard hands out short-lived copies for
// authorization headers and zeroes its buffer on Release.
//
// Release is safe to call multiple times and from any exit path (normal
// return, signal handler, deferred cleanup). After Release every accessor
// fails with ErrCredentialReleased.
type Guard struct {
	mu       sync.Mutex
	identity string
	secret   []byte
	released bool
}

// Hold takes ownership of a credential
func Hold(cred Credential) *Guard {
	secret := make([]byte, len(cred.secret))
	copy(secret, cred.secret)
	return &Guard{
		identity: cred.Identity,
		secret:   secret,
	}
}

// Identity returns the account handle. The handle is not secret and remains
// readable after Release.
func (g *Guard) Identity() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.identity
}

// Token returns a copy of the secret, or ErrCredentialReleased after Release
func (g *Guard) Token() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.released {
		return "", gherrors.ErrCredentialReleased
	}
	return string(g.secret), nil
}

// Release zeroes the secret buffer. Best-effort: copies handed out earlier
// (request headers in flight, the Go string returned by Token) are not
// reachable from here and rely on process exit.
func (g *Guard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.secret {
		g.secret[i] = 0
	}
	g.secret = nil
	g.released = true
}

// Released reports whether the guard has been released
func (g *Guard) Released() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.released
}

// TokenSource returns an oauth2.TokenSource backed by the guard, for wiring
// into an authenticated HTTP transport. The source reads the live buffer on
// every call, so it fails once the guard is released.
func (g *Guard) TokenSource() oauth2.TokenSource {
	return guardTokenSource{guard: g}
}

type guardTokenSource struct {
	guard *Guard
}

func (s guardTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.guard.Token()
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: token}, nil
}
