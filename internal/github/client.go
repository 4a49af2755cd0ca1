package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gh "github.com/google/go-github/v68/github"

	gherrors "github.com/quillhq/ghops/internal/errors"
	"github.com/quillhq/ghops/internal/session"
)

// client implements the Client interface on top of an authenticated session
type client struct {
	s *session.Session
}

// NewClient creates a new GitHub client backed by the provided session.
// All calls route through the session so fail-fast and retry semantics apply.
func NewClient(s *session.Session) Client {
	return &client{s: s}
}

func (c *client) gh() *gh.Client {
	return c.s.Client()
}

// GetUser returns the authenticated user
func (c *client) GetUser(ctx context.Context) (*gh.User, error) {
	var user *gh.User
	err := c.s.Execute(ctx, http.MethodGet, func(ctx context.Context) (*gh.Response, error) {
		u, resp, err := c.gh().Users.Get(ctx, "")
		user = u
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListRepos returns all repositories of the authenticated user using
// iterative pagination
func (c *client) ListRepos(ctx context.Context, opts *ListOptions) ([]*gh.Repository, error) {
	if opts == nil {
		opts = DefaultListOptions()
	}

	var allRepos []*gh.Repository

	ghOpts := &gh.RepositoryListByAuthenticatedUserOptions{
		Visibility:  opts.Visibility,
		Affiliation: opts.Affiliation,
		ListOptions: gh.ListOptions{
			Page:    1,
			PerPage: opts.PerPage,
		},
	}

	for {
		var page []*gh.Repository
		var next int
		err := c.s.Execute(ctx, http.MethodGet, func(ctx context.Context) (*gh.Response, error) {
			repos, resp, err := c.gh().Repositories.ListByAuthenticatedUser(ctx, ghOpts)
			page = repos
			if resp != nil {
				next = resp.NextPage
			}
			return resp, err
		})
		if err != nil {
			return nil, err
		}

		allRepos = append(allRepos, page...)

		if next == 0 {
			break
		}
		ghOpts.Page = next
	}

	return allRepos, nil
}

// CreateRepo creates a new repository for the authenticated user
func (c *client) CreateRepo(ctx context.Context, opts *NewRepoOptions) (*gh.Repository, error) {
	if opts == nil || opts.Name == "" {
		return nil, gherrors.NewValidationError("name", "repository name cannot be empty")
	}

	newRepo := &gh.Repository{
		Name:        gh.String(opts.Name),
		Private:     gh.Bool(opts.Private),
		Description: gh.String(opts.Description),
		AutoInit:    gh.Bool(opts.AutoInit),
	}

	var repo *gh.Repository
	err := c.s.Execute(ctx, http.MethodPost, func(ctx context.Context) (*gh.Response, error) {
		r, resp, err := c.gh().Repositories.Create(ctx, "", newRepo)
		repo = r
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// DeleteRepo permanently deletes a repository
func (c *client) DeleteRepo(ctx context.Context, owner, repo string) error {
	return c.s.Execute(ctx, http.MethodDelete, func(ctx context.Context) (*gh.Response, error) {
		return c.gh().Repositories.Delete(ctx, owner, repo)
	})
}

// GetRepository returns information about a single repository
func (c *client) GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, error) {
	var repository *gh.Repository
	err := c.s.Execute(ctx, http.MethodGet, func(ctx context.Context) (*gh.Response, error) {
		r, resp, err := c.gh().Repositories.Get(ctx, owner, repo)
		repository = r
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return repository, nil
}

// UploadFile creates or updates a file via the contents API. When the file
// already exists its blob SHA is required, so the upload is preceded by a
// lookup and a not-found answer selects the create path.
func (c *client) UploadFile(ctx context.Context, owner, repo string, opts *UploadOptions) (*gh.RepositoryContentResponse, error) {
	if opts == nil || opts.Path == "" {
		return nil, gherrors.NewValidationError("path", "destination path cannot be empty")
	}

	message := opts.Message
	if message == "" {
		message = fmt.Sprintf("Upload %s", opts.Path)
	}

	existing, err := c.getContent(ctx, owner, repo, opts.Path, opts.Branch)
	if err != nil && !gherrors.IsNotFound(err) {
		return nil, err
	}

	fileOpts := &gh.RepositoryContentFileOptions{
		Message: gh.String(message),
		Content: opts.Content,
	}
	if opts.Branch != "" {
		fileOpts.Branch = gh.String(opts.Branch)
	}

	var result *gh.RepositoryContentResponse
	if existing != nil {
		fileOpts.SHA = gh.String(existing.GetSHA())
		err = c.s.Execute(ctx, http.MethodPut, func(ctx context.Context) (*gh.Response, error) {
			r, resp, err := c.gh().Repositories.UpdateFile(ctx, owner, repo, opts.Path, fileOpts)
			result = r
			return resp, err
		})
	} else {
		err = c.s.Execute(ctx, http.MethodPut, func(ctx context.Context) (*gh.Response, error) {
			r, resp, err := c.gh().Repositories.CreateFile(ctx, owner, repo, opts.Path, fileOpts)
			result = r
			return resp, err
		})
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DownloadFile fetches a file from a repository and returns its decoded
// content
func (c *client) DownloadFile(ctx context.Context, owner, repo, path string) ([]byte, error) {
	content, err := c.getContent(ctx, owner, repo, path, "")
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, gherrors.NewValidationError("path", path+" is a directory, not a file")
	}

	decoded, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode content of %s: %w", path, err)
	}
	return []byte(decoded), nil
}

func (c *client) getContent(ctx context.Context, owner, repo, path, ref string) (*gh.RepositoryContent, error) {
	var getOpts *gh.RepositoryContentGetOptions
	if ref != "" {
		getOpts = &gh.RepositoryContentGetOptions{Ref: ref}
	}

	var content *gh.RepositoryContent
	err := c.s.Execute(ctx, http.MethodGet, func(ctx context.Context) (*gh.Response, error) {
		fileContent, _, resp, err := c.gh().Repositories.GetContents(ctx, owner, repo, path, getOpts)
		content = fileContent
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}

// ListWorkflows returns the Actions workflows of a repository
func (c *client) ListWorkflows(ctx context.Context, owner, repo string) ([]*gh.Workflow, error) {
	var allWorkflows []*gh.Workflow

	opts := &gh.ListOptions{
		Page:    1,
		PerPage: 100,
	}

	for {
		var page *gh.Workflows
		var next int
		err := c.s.Execute(ctx, http.MethodGet, func(ctx context.Context) (*gh.Response, error) {
			workflows, resp, err := c.gh().Actions.ListWorkflows(ctx, owner, repo, opts)
			page = workflows
			if resp != nil {
				next = resp.NextPage
			}
			return resp, err
		})
		if err != nil {
			return nil, err
		}

		if page != nil {
			allWorkflows = append(allWorkflows, page.Workflows...)
		}

		if next == 0 {
			break
		}
		opts.Page = next
	}

	return allWorkflows, nil
}

// TriggerWorkflow dispatches a workflow run on the given ref
func (c *client) TriggerWorkflow(ctx context.Context, owner, repo, workflow, ref string) error {
	if workflow == "" {
		return gherrors.NewValidationError("workflow", "workflow ID or file name cannot be empty")
	}
	if ref == "" {
		ref = "main"
	}

	event := gh.CreateWorkflowDispatchEventRequest{Ref: ref}

	return c.s.Execute(ctx, http.MethodPost, func(ctx context.Context) (*gh.Response, error) {
		if id, err := strconv.ParseInt(workflow, 10, 64); err == nil {
			return c.gh().Actions.CreateWorkflowDispatchEventByID(ctx, owner, repo, id, event)
		}
		return c.gh().Actions.CreateWorkflowDispatchEventByFileName(ctx, owner, repo, workflow, event)
	})
}

// CreateGist creates a gist from the given files
func (c *client) CreateGist(ctx context.Context, description string, public bool, files map[string]string) (*gh.Gist, error) {
	if len(files) == 0 {
		return nil, gherrors.NewValidationError("files", "a gist requires at least one file")
	}

	gistFiles := make(map[gh.GistFilename]gh.GistFile, len(files))
	for name, content := range files {
		gistFiles[gh.GistFilename(name)] = gh.GistFile{Content: gh.String(content)}
	}

	newGist := &gh.Gist{
		Description: gh.String(description),
		Public:      gh.Bool(public),
		Files:       gistFiles,
	}

	var gist *gh.Gist
	err := c.s.Execute(ctx, http.MethodPost, func(ctx context.Context) (*gh.Response, error) {
		g, resp, err := c.gh().Gists.Create(ctx, newGist)
		gist = g
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return gist, nil
}

// ListGists returns the authenticated user's gists
func (c *client) ListGists(ctx context.Context) ([]*gh.Gist, error) {
	var allGists []*gh.Gist

	opts := &gh.GistListOptions{
		ListOptions: gh.ListOptions{
			Page:    1,
			PerPage: 100,
		},
	}

	for {
		var page []*gh.Gist
		var next int
		err := c.s.Execute(ctx, http.MethodGet, func(ctx context.Context) (*gh.Response, error) {
			gists, resp, err := c.gh().Gists.List(ctx, "", opts)
			page = gists
			if resp != nil {
				next = resp.NextPage
			}
			return resp, err
		})
		if err != nil {
			return nil, err
		}

		allGists = append(allGists, page...)

		if next == 0 {
			break
		}
		opts.Page = next
	}

	return allGists, nil
}

// ListNotifications returns the authenticated user's notifications
func (c *client) ListNotifications(ctx context.Context, all bool) ([]*gh.Notification, error) {
	var allNotifications []*gh.Notification

	opts := &gh.NotificationListOptions{
		All: all,
		ListOptions: gh.ListOptions{
			Page:    1,
			PerPage: 100,
		},
	}

	for {
		var page []*gh.Notification
		var next int
		err := c.s.Execute(ctx, http.MethodGet, func(ctx context.Context) (*gh.Response, error) {
			notifications, resp, err := c.gh().Activity.ListNotifications(ctx, opts)
			page = notifications
			if resp != nil {
				next = resp.NextPage
			}
			return resp, err
		})
		if err != nil {
			return nil, err
		}

		allNotifications = append(allNotifications, page...)

		if next == 0 {
			break
		}
		opts.Page = next
	}

	return allNotifications, nil
}

// MarkNotificationsRead marks all notifications as read
func (c *client) MarkNotificationsRead(ctx context.Context) error {
	return c.s.Execute(ctx, http.MethodPut, func(ctx context.Context) (*gh.Response, error) {
		return c.gh().Activity.MarkNotificationsRead(ctx, gh.Timestamp{Time: time.Now()})
	})
}

// CreateIssue opens an issue on a repository
func (c *client) CreateIssue(ctx context.Context, owner, repo, title, body string) (*gh.Issue, error) {
	if title == "" {
		return nil, gherrors.NewValidationError("title", "issue title cannot be empty")
	}

	request := &gh.IssueRequest{
		Title: gh.String(title),
	}
	if body != "" {
		request.Body = gh.String(body)
	}

	var issue *gh.Issue
	err := c.s.Execute(ctx, http.MethodPost, func(ctx context.Context) (*gh.Response, error) {
		i, resp, err := c.gh().Issues.Create(ctx, owner, repo, request)
		issue = i
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// ListIssues returns issues of a repository filtered by state
func (c *client) ListIssues(ctx context.Context, owner, repo, state string) ([]*gh.Issue, error) {
	if state == "" {
		state = "open"
	}

	var allIssues []*gh.Issue

	opts := &gh.IssueListByRepoOptions{
		State: state,
		ListOptions: gh.ListOptions{
			Page:    1,
			PerPage: 100,
		},
	}

	for {
		var page []*gh.Issue
		var next int
		err := c.s.Execute(ctx, http.MethodGet, func(ctx context.Context) (*gh.Response, error) {
			issues, resp, err := c.gh().Issues.ListByRepo(ctx, owner, repo, opts)
			page = issues
			if resp != nil {
				next = resp.NextPage
			}
			return resp, err
		})
		if err != nil {
			return nil, err
		}

		allIssues = append(allIssues, page...)

		if next == 0 {
			break
		}
		opts.Page = next
	}

	return allIssues, nil
}

// GetRateLimit returns the current rate limit status
func (c *client) GetRateLimit(ctx context.Context) (*gh.RateLimits, error) {
	var rateLimits *gh.RateLimits
	err := c.s.Execute(ctx, http.MethodGet, func(ctx context.Context) (*gh.Response, error) {
		limits, resp, err := c.gh().RateLimit.Get(ctx)
		rateLimits = limits
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return rateLimits, nil
}
