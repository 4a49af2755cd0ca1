// Package session provides the authenticated API session used for all
// outbound GitHub calls. A session attaches the guarded credential to every
// request, maps HTTP failures onto the error taxonomy, and tracks an
// authentication state machine: unauthenticated until the first response,
// authenticated after any non-unauthorized response, and invalid after an
// unauthorized response. An invalid session fails fast without touching the
// network until fresh credentials produce a new session.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v68/github"
	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"

	"github.com/quillhq/ghops/internal/credential"
	gherrors "github.com/quillhq/ghops/internal/errors"
)

// DefaultTimeout bounds each API call
const DefaultTimeout = 30 * time.Second

// State represents the session authentication state
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
	StateInvalid         State = "invalid"
)

// Session performs authenticated operations against the GitHub API.
// Safe for shared read-only use after construction; state transitions are
// internally synchronized.
type Session struct {
	gh    *gh.Client
	guard *credential.Guard
	retry *RetryConfig

	mu    sync.Mutex
	state State
}

type settings struct {
	baseURL    string
	timeout    time.Duration
	retry      *RetryConfig
	httpClient *http.Client
}

// Option configures a Session
type Option func(*settings)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithBaseURL points the session at a non-default API endpoint
// (GitHub Enterprise Server)
func WithBaseURL(baseURL string) Option {
	return func(s *settings) { s.baseURL = baseURL }
}

// WithRetryConfig overrides the retry behavior for idempotent requests
func WithRetryConfig(rc *RetryConfig) Option {
	return func(s *settings) { s.retry = rc }
}

// WithHTTPClient replaces the default transport stack (cache + secondary
// rate limit middleware). Used by tests to intercept traffic.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) { s.httpClient = hc }
}

// New creates a session around a guarded credential. The transport stack is,
// outermost first: oauth2 token injection from the guard, secondary rate
// limit middleware, in-memory conditional request cache.
func New(guard *credential.Guard, opts ...Option) (*Session, error) {
	cfg := settings{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	base := cfg.httpClient
	if base == nil {
		base = github_ratelimit.NewClient(httpcache.NewMemoryCacheTransport())
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	authClient := oauth2.NewClient(ctx, guard.TokenSource())
	authClient.Timeout = cfg.timeout

	client := gh.NewClient(authClient)
	if cfg.baseURL != "" {
		u, err := url.Parse(cfg.baseURL)
		if err != nil {
			return nil, gherrors.NewValidationError("base-url", err.Error())
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.BaseURL = u
	}

	retry := cfg.retry
	if retry == nil {
		retry = DefaultRetryConfig()
	}

	return &Session{
		gh:    client,
		guard: guard,
		retry: retry,
		state: StateUnauthenticated,
	}, nil
}

// Client exposes the underlying go-github client for typed operations.
// Callers must route requests through Execute so state tracking and retry
// semantics apply.
func (s *Session) Client() *gh.Client {
	return s.gh
}

// Identity returns the account handle the session authenticates as
func (s *Session) Identity() string {
	return s.guard.Identity()
}

// State returns the current session state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Execute runs a single API call through the session. The method parameter
// decides retry eligibility: idempotent requests are retried with bounded
// backoff on transport failures, mutating requests are attempted exactly
// once. Once the session is invalid, Execute fails immediately with
// ErrUnauthorized and does not invoke call.
func (s *Session) Execute(ctx context.Context, method string, call func(context.Context) (*gh.Response, error)) error {
	if err := s.failFast(); err != nil {
		return err
	}

	attempts := 1
	if isIdempotent(method) {
		attempts = s.retry.MaxRetries + 1
	}

	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(calculateBackoff(attempt-1, s.retry)):
			}
		}

		resp, err := call(ctx)
		lastErr = wrapAPIError(resp, err)
		s.observe(resp, lastErr)

		if lastErr == nil {
			return nil
		}
		if !gherrors.IsRetryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

// Do performs a raw authenticated request against an API path and returns
// the response body. The path is relative to the API base (e.g. "/user").
// It is the generic pass-through for endpoints without a typed operation.
func (s *Session) Do(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	rel := strings.TrimPrefix(path, "/")

	// Surface malformed paths as validation errors before touching the
	// session state machine
	if _, err := s.gh.NewRequest(method, rel, nil); err != nil {
		return nil, gherrors.NewValidationError("path", err.Error())
	}

	var raw json.RawMessage
	err := s.Execute(ctx, method, func(ctx context.Context) (*gh.Response, error) {
		req, err := s.gh.NewRequest(method, rel, body)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		resp, err := s.gh.Do(ctx, req, &buf)
		if err != nil {
			return resp, err
		}
		if buf.Len() > 0 {
			raw = json.RawMessage(bytes.Clone(buf.Bytes()))
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *Session) failFast() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInvalid {
		return gherrors.ErrUnauthorized
	}
	return nil
}

// observe advances the state machine after an attempt. Any response that is
// not an authorization failure proves the credential works, including error
// responses like 404.
func (s *Session) observe(resp *gh.Response, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil && gherrors.IsUnauthorized(err) {
		s.state = StateInvalid
		return
	}
	if s.state == StateUnauthenticated && resp != nil {
		s.state = StateAuthenticated
	}
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
