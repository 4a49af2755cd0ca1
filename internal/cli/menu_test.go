package cli

import (
	"context"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gherrors "github.com/quillhq/ghops/internal/errors"
	"github.com/quillhq/ghops/internal/github"
)

func TestVerifyCredentials(t *testing.T) {
	t.Run("returns the remote login", func(t *testing.T) {
		mock := github.NewMockClient()
		mock.GetUserFunc = func(ctx context.Context) (*gh.User, error) {
			return &gh.User{Login: gh.String("alice")}, nil
		}

		login, err := verifyCredentials(context.Background(), mock)

		require.NoError(t, err)
		assert.Equal(t, "alice", login)
	})

	t.Run("surfaces a bad token before any operation", func(t *testing.T) {
		mock := github.NewMockClient()
		mock.GetUserFunc = func(ctx context.Context) (*gh.User, error) {
			return nil, gherrors.ErrUnauthorized
		}

		_, err := verifyCredentials(context.Background(), mock)

		assert.ErrorIs(t, err, gherrors.ErrUnauthorized)
	})
}

func TestDispatchAction(t *testing.T) {
	t.Run("routes formless actions to the client", func(t *testing.T) {
		tests := []struct {
			action string
			method string
		}{
			{action: "repo-list", method: "ListRepos"},
			{action: "gist-list", method: "ListGists"},
			{action: "notification-list", method: "ListNotifications"},
			{action: "notification-read", method: "MarkNotificationsRead"},
			{action: "user", method: "GetUser"},
			{action: "limits", method: "GetRateLimit"},
		}

		for _, tt := range tests {
			t.Run(tt.action, func(t *testing.T) {
				mock := github.NewMockClient()
				mock.GetUserFunc = func(ctx context.Context) (*gh.User, error) {
					return &gh.User{Login: gh.String("alice")}, nil
				}
				mock.GetRateLimitFunc = func(ctx context.Context) (*gh.RateLimits, error) {
					return &gh.RateLimits{Core: &gh.Rate{Limit: 5000}}, nil
				}

				err := dispatchAction(context.Background(), mock, tt.action)

				require.NoError(t, err)
				assert.Equal(t, 1, mock.CallCount(tt.method))
			})
		}
	})

	t.Run("rejects unknown actions", func(t *testing.T) {
		mock := github.NewMockClient()

		err := dispatchAction(context.Background(), mock, "bogus")
		assert.Error(t, err)
	})

	t.Run("propagates client errors", func(t *testing.T) {
		mock := github.NewMockClient()
		mock.ListGistsFunc = func(ctx context.Context) ([]*gh.Gist, error) {
			return nil, gherrors.ErrRateLimited
		}

		err := dispatchAction(context.Background(), mock, "gist-list")
		assert.ErrorIs(t, err, gherrors.ErrRateLimited)
	})
}
