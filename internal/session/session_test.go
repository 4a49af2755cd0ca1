package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/ghops/internal/credential"
	gherrors "github.com/quillhq/ghops/internal/errors"
)

// fastRetry keeps retry tests quick
func fastRetry() *RetryConfig {
	return &RetryConfig{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()

	cred, err := credential.Static("alice", "ghp_example")
	require.NoError(t, err)

	opts = append([]Option{
		WithHTTPClient(&http.Client{}),
		WithRetryConfig(fastRetry()),
	}, opts...)

	s, err := New(credential.Hold(cred), opts...)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Equal(t, "alice", s.Identity())
	assert.NotNil(t, s.Client())
}

func TestNew_InvalidBaseURL(t *testing.T) {
	cred, err := credential.Static("alice", "ghp_example")
	require.NoError(t, err)

	_, err = New(credential.Hold(cred), WithBaseURL("://not-a-url"))
	var vErr *gherrors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestDo_AuthenticatedUserFlow(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var gotAuth string
	httpmock.RegisterResponder("GET", "https://api.github.com/user",
		func(req *http.Request) (*http.Response, error) {
			gotAuth = req.Header.Get("Authorization")
			resp := httpmock.NewStringResponse(200, `{"login":"alice"}`)
			resp.Header.Set("Content-Type", "application/json")
			return resp, nil
		})

	s := newTestSession(t)
	raw, err := s.Do(context.Background(), http.MethodGet, "/user", nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"login":"alice"}`, string(raw))
	assert.Equal(t, "Bearer ghp_example", gotAuth)
	assert.Equal(t, StateAuthenticated, s.State())
}

func TestDo_UnauthorizedInvalidatesSession(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://api.github.com/user",
		httpmock.NewJsonResponderOrPanic(401, map[string]string{"message": "Bad credentials"}))

	s := newTestSession(t)

	_, err := s.Do(context.Background(), http.MethodGet, "/user", nil)
	assert.ErrorIs(t, err, gherrors.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Bad credentials")
	assert.Equal(t, StateInvalid, s.State())

	// Subsequent calls fail fast without issuing a network request
	calls := httpmock.GetTotalCallCount()
	_, err = s.Do(context.Background(), http.MethodGet, "/user", nil)
	assert.ErrorIs(t, err, gherrors.ErrUnauthorized)
	assert.Equal(t, calls, httpmock.GetTotalCallCount())
}

func TestDo_NonUnauthorizedErrorStillAuthenticates(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://api.github.com/repos/alice/missing",
		httpmock.NewJsonResponderOrPanic(404, map[string]string{"message": "Not Found"}))

	s := newTestSession(t)

	_, err := s.Do(context.Background(), http.MethodGet, "/repos/alice/missing", nil)
	assert.ErrorIs(t, err, gherrors.ErrNotFound)

	// A 404 is still proof the credential was accepted
	assert.Equal(t, StateAuthenticated, s.State())
}

func TestDo_RateLimitedSurfacesRetryAfter(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://api.github.com/user",
		func(req *http.Request) (*http.Response, error) {
			resp := httpmock.NewStringResponse(429, `{"message":"Too many requests"}`)
			resp.Header.Set("Content-Type", "application/json")
			resp.Header.Set("Retry-After", "30")
			return resp, nil
		})

	s := newTestSession(t)

	_, err := s.Do(context.Background(), http.MethodGet, "/user", nil)
	assert.ErrorIs(t, err, gherrors.ErrRateLimited)

	retryAfter, ok := gherrors.RetryAfter(err)
	require.True(t, ok, "expected a retry-after interval")
	assert.Equal(t, 30*time.Second, retryAfter)
}

func TestDo_PrimaryRateLimitSurfacesResetInterval(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	reset := time.Now().Add(90 * time.Second).Unix()
	httpmock.RegisterResponder("GET", "https://api.github.com/user",
		func(req *http.Request) (*http.Response, error) {
			resp := httpmock.NewStringResponse(403, `{"message":"API rate limit exceeded"}`)
			resp.Header.Set("Content-Type", "application/json")
			resp.Header.Set("X-Ratelimit-Limit", "60")
			resp.Header.Set("X-Ratelimit-Remaining", "0")
			resp.Header.Set("X-Ratelimit-Reset", fmt.Sprintf("%d", reset))
			return resp, nil
		})

	s := newTestSession(t)

	_, err := s.Do(context.Background(), http.MethodGet, "/user", nil)
	assert.ErrorIs(t, err, gherrors.ErrRateLimited)

	retryAfter, ok := gherrors.RetryAfter(err)
	require.True(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestDo_IdempotentRetriedOnNetworkError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder("GET", "https://api.github.com/user",
		func(req *http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("dial tcp: connection refused")
			}
			resp := httpmock.NewStringResponse(200, `{"login":"alice"}`)
			resp.Header.Set("Content-Type", "application/json")
			return resp, nil
		})

	s := newTestSession(t)

	raw, err := s.Do(context.Background(), http.MethodGet, "/user", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"login":"alice"}`, string(raw))
	assert.Equal(t, 2, calls)
	assert.Equal(t, StateAuthenticated, s.State())
}

func TestDo_MutatingNeverRetried(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder("POST", "https://api.github.com/user/repos",
		func(req *http.Request) (*http.Response, error) {
			calls++
			return nil, errors.New("dial tcp: connection refused")
		})

	s := newTestSession(t)

	_, err := s.Do(context.Background(), http.MethodPost, "/user/repos", map[string]string{"name": "demo"})

	var netErr *gherrors.NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, 1, calls, "mutating request must not be retried")
}

func TestDo_NetworkErrorExhaustsRetries(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder("GET", "https://api.github.com/user",
		func(req *http.Request) (*http.Response, error) {
			calls++
			return nil, errors.New("dial tcp: connection refused")
		})

	s := newTestSession(t)

	_, err := s.Do(context.Background(), http.MethodGet, "/user", nil)

	var netErr *gherrors.NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, fastRetry().MaxRetries+1, calls)
}

func TestDo_PostPassesBody(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://api.github.com/user/repos",
		func(req *http.Request) (*http.Response, error) {
			resp := httpmock.NewStringResponse(201, `{"name":"demo","full_name":"alice/demo"}`)
			resp.Header.Set("Content-Type", "application/json")
			return resp, nil
		})

	s := newTestSession(t)

	raw, err := s.Do(context.Background(), http.MethodPost, "/user/repos", map[string]interface{}{
		"name":    "demo",
		"private": true,
	})

	require.NoError(t, err)
	assert.Contains(t, string(raw), "alice/demo")
}

func TestDo_InvalidPath(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Do(context.Background(), http.MethodGet, "://bad path", nil)

	var vErr *gherrors.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, StateUnauthenticated, s.State())
}

func TestExecute_ContextCancellationStopsRetry(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://api.github.com/user",
		func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp: connection refused")
		})

	s := newTestSession(t, WithRetryConfig(&RetryConfig{
		MaxRetries:   5,
		InitialDelay: time.Hour,
		MaxDelay:     time.Hour,
		Multiplier:   1.0,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Do(ctx, http.MethodGet, "/user", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_ReleasedGuardFailsRequests(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	cred, err := credential.Static("alice", "ghp_example")
	require.NoError(t, err)
	guard := credential.Hold(cred)

	s, err := New(guard, WithHTTPClient(&http.Client{}), WithRetryConfig(fastRetry()))
	require.NoError(t, err)

	guard.Release()

	_, err = s.Do(context.Background(), http.MethodGet, "/user", nil)
	assert.ErrorIs(t, err, gherrors.ErrCredentialReleased)
	assert.Zero(t, httpmock.GetTotalCallCount())
}
