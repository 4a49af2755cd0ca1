// Package github provides interfaces and implementation for GitHub API
// operations on the authenticated account
package github

import (
	"context"

	gh "github.com/google/go-github/v68/github"
)

// Client defines the interface for GitHub API operations
type Client interface {
	// GetUser returns the authenticated user. Also serves as the
	// credential verification call.
	GetUser(ctx context.Context) (*gh.User, error)

	// ListRepos returns all repositories of the authenticated user
	ListRepos(ctx context.Context, opts *ListOptions) ([]*gh.Repository, error)

	// CreateRepo creates a new repository for the authenticated user
	CreateRepo(ctx context.Context, opts *NewRepoOptions) (*gh.Repository, error)

	// DeleteRepo permanently deletes a repository
	DeleteRepo(ctx context.Context, owner, repo string) error

	// GetRepository returns information about a single repository
	GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, error)

	// UploadFile creates or updates a file in a repository via the
	// contents API
	UploadFile(ctx context.Context, owner, repo string, opts *UploadOptions) (*gh.RepositoryContentResponse, error)

	// DownloadFile fetches a file from a repository and returns its
	// decoded content
	DownloadFile(ctx context.Context, owner, repo, path string) ([]byte, error)

	// ListWorkflows returns the Actions workflows of a repository
	ListWorkflows(ctx context.Context, owner, repo string) ([]*gh.Workflow, error)

	// TriggerWorkflow dispatches a workflow run on the given ref.
	// The workflow is identified by numeric ID or by file name.
	TriggerWorkflow(ctx context.Context, owner, repo, workflow, ref string) error

	// CreateGist creates a gist from the given files
	CreateGist(ctx context.Context, description string, public bool, files map[string]string) (*gh.Gist, error)

	// ListGists returns the authenticated user's gists
	ListGists(ctx context.Context) ([]*gh.Gist, error)

	// ListNotifications returns the authenticated user's notifications
	ListNotifications(ctx context.Context, all bool) ([]*gh.Notification, error)

	// MarkNotificationsRead marks all notifications as read
	MarkNotificationsRead(ctx context.Context) error

	// CreateIssue opens an issue on a repository
	CreateIssue(ctx context.Context, owner, repo, title, body string) (*gh.Issue, error)

	// ListIssues returns issues of a repository filtered by state
	// (open, closed, all)
	ListIssues(ctx context.Context, owner, repo, state string) ([]*gh.Issue, error)

	// GetRateLimit returns the current rate limit status
	GetRateLimit(ctx context.Context) (*gh.RateLimits, error)
}

// ListOptions specifies optional parameters for repository list operations
type ListOptions struct {
	// Visibility of repositories to list: all, public, private (default: all)
	Visibility string

	// Affiliation filters by relationship to the user: owner, collaborator,
	// organization_member (default: owner)
	Affiliation string

	// PerPage specifies the number of results per page (max 100)
	PerPage int
}

// DefaultListOptions returns default list options
func DefaultListOptions() *ListOptions {
	return &ListOptions{
		Visibility:  "all",
		Affiliation: "owner",
		PerPage:     100,
	}
}

// NewRepoOptions describes a repository to create
type NewRepoOptions struct {
	Name        string
	Description string
	Private     bool

	// AutoInit initializes the repository with an empty README
	AutoInit bool
}

// UploadOptions describes a file upload via the contents API
type UploadOptions struct {
	// Path is the destination path within the repository
	Path string

	// Branch is the target branch (default: the repository default branch)
	Branch string

	// Message is the commit message
	Message string

	// Content is the raw file content (encoded by the transport layer)
	Content []byte
}
