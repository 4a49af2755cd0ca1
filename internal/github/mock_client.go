package github

import (
	"context"

	gh "github.com/google/go-github/v68/github"
)

// MockClient is a mock implementation of the Client interface for testing
type MockClient struct {
	// GetUserFunc can be set to mock GetUser behavior
	GetUserFunc func(ctx context.Context) (*gh.User, error)

	// ListReposFunc can be set to mock ListRepos behavior
	ListReposFunc func(ctx context.Context, opts *ListOptions) ([]*gh.Repository, error)

	// CreateRepoFunc can be set to mock CreateRepo behavior
	CreateRepoFunc func(ctx context.Context, opts *NewRepoOptions) (*gh.Repository, error)

	// DeleteRepoFunc can be set to mock DeleteRepo behavior
	DeleteRepoFunc func(ctx context.Context, owner, repo string) error

	// GetRepositoryFunc can be set to mock GetRepository behavior
	GetRepositoryFunc func(ctx context.Context, owner, repo string) (*gh.Repository, error)

	// UploadFileFunc can be set to mock UploadFile behavior
	UploadFileFunc func(ctx context.Context, owner, repo string, opts *UploadOptions) (*gh.RepositoryContentResponse, error)

	// DownloadFileFunc can be set to mock DownloadFile behavior
	DownloadFileFunc func(ctx context.Context, owner, repo, path string) ([]byte, error)

	// ListWorkflowsFunc can be set to mock ListWorkflows behavior
	ListWorkflowsFunc func(ctx context.Context, owner, repo string) ([]*gh.Workflow, error)

	// TriggerWorkflowFunc can be set to mock TriggerWorkflow behavior
	TriggerWorkflowFunc func(ctx context.Context, owner, repo, workflow, ref string) error

	// CreateGistFunc can be set to mock CreateGist behavior
	CreateGistFunc func(ctx context.Context, description string, public bool, files map[string]string) (*gh.Gist, error)

	// ListGistsFunc can be set to mock ListGists behavior
	ListGistsFunc func(ctx context.Context) ([]*gh.Gist, error)

	// ListNotificationsFunc can be set to mock ListNotifications behavior
	ListNotificationsFunc func(ctx context.Context, all bool) ([]*gh.Notification, error)

	// MarkNotificationsReadFunc can be set to mock MarkNotificationsRead behavior
	MarkNotificationsReadFunc func(ctx context.Context) error

	// CreateIssueFunc can be set to mock CreateIssue behavior
	CreateIssueFunc func(ctx context.Context, owner, repo, title, body string) (*gh.Issue, error)

	// ListIssuesFunc can be set to mock ListIssues behavior
	ListIssuesFunc func(ctx context.Context, owner, repo, state string) ([]*gh.Issue, error)

	// GetRateLimitFunc can be set to mock GetRateLimit behavior
	GetRateLimitFunc func(ctx context.Context) (*gh.RateLimits, error)

	// Call tracking
	Calls []MockCall
}

// MockCall records a method call for verification
type MockCall struct {
	Method string
	Args   []interface{}
}

// NewMockClient creates a new mock client
func NewMockClient() *MockClient {
	return &MockClient{
		Calls: make([]MockCall, 0),
	}
}

// GetUser implements Client.GetUser
func (m *MockClient) GetUser(ctx context.Context) (*gh.User, error) {
	m.record("GetUser")
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx)
	}
	return nil, nil
}

// ListRepos implements Client.ListRepos
func (m *MockClient) ListRepos(ctx context.Context, opts *ListOptions) ([]*gh.Repository, error) {
	m.record("ListRepos", opts)
	if m.ListReposFunc != nil {
		return m.ListReposFunc(ctx, opts)
	}
	return nil, nil
}

// CreateRepo implements Client.CreateRepo
func (m *MockClient) CreateRepo(ctx context.Context, opts *NewRepoOptions) (*gh.Repository, error) {
	m.record("CreateRepo", opts)
	if m.CreateRepoFunc != nil {
		return m.CreateRepoFunc(ctx, opts)
	}
	return nil, nil
}

// DeleteRepo implements Client.DeleteRepo
func (m *MockClient) DeleteRepo(ctx context.Context, owner, repo string) error {
	m.record("DeleteRepo", owner, repo)
	if m.DeleteRepoFunc != nil {
		return m.DeleteRepoFunc(ctx, owner, repo)
	}
	return nil
}

// GetRepository implements Client.GetRepository
func (m *MockClient) GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, error) {
	m.record("GetRepository", owner, repo)
	if m.GetRepositoryFunc != nil {
		return m.GetRepositoryFunc(ctx, owner, repo)
	}
	return nil, nil
}

// UploadFile implements Client.UploadFile
func (m *MockClient) UploadFile(ctx context.Context, owner, repo string, opts *UploadOptions) (*gh.RepositoryContentResponse, error) {
	m.record("UploadFile", owner, repo, opts)
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, owner, repo, opts)
	}
	return nil, nil
}

// DownloadFile implements Client.DownloadFile
func (m *MockClient) DownloadFile(ctx context.Context, owner, repo, path string) ([]byte, error) {
	m.record("DownloadFile", owner, repo, path)
	if m.DownloadFileFunc != nil {
		return m.DownloadFileFunc(ctx, owner, repo, path)
	}
	return nil, nil
}

// ListWorkflows implements Client.ListWorkflows
func (m *MockClient) ListWorkflows(ctx context.Context, owner, repo string) ([]*gh.Workflow, error) {
	m.record("ListWorkflows", owner, repo)
	if m.ListWorkflowsFunc != nil {
		return m.ListWorkflowsFunc(ctx, owner, repo)
	}
	return nil, nil
}

// TriggerWorkflow implements Client.TriggerWorkflow
func (m *MockClient) TriggerWorkflow(ctx context.Context, owner, repo, workflow, ref string) error {
	m.record("TriggerWorkflow", owner, repo, workflow, ref)
	if m.TriggerWorkflowFunc != nil {
		return m.TriggerWorkflowFunc(ctx, owner, repo, workflow, ref)
	}
	return nil
}

// CreateGist implements Client.CreateGist
func (m *MockClient) CreateGist(ctx context.Context, description string, public bool, files map[string]string) (*gh.Gist, error) {
	m.record("CreateGist", description, public, files)
	if m.CreateGistFunc != nil {
		return m.CreateGistFunc(ctx, description, public, files)
	}
	return nil, nil
}

// ListGists implements Client.ListGists
func (m *MockClient) ListGists(ctx context.Context) ([]*gh.Gist, error) {
	m.record("ListGists")
	if m.ListGistsFunc != nil {
		return m.ListGistsFunc(ctx)
	}
	return nil, nil
}

// ListNotifications implements Client.ListNotifications
func (m *MockClient) ListNotifications(ctx context.Context, all bool) ([]*gh.Notification, error) {
	m.record("ListNotifications", all)
	if m.ListNotificationsFunc != nil {
		return m.ListNotificationsFunc(ctx, all)
	}
	return nil, nil
}

// MarkNotificationsRead implements Client.MarkNotificationsRead
func (m *MockClient) MarkNotificationsRead(ctx context.Context) error {
	m.record("MarkNotificationsRead")
	if m.MarkNotificationsReadFunc != nil {
		return m.MarkNotificationsReadFunc(ctx)
	}
	return nil
}

// CreateIssue implements Client.CreateIssue
func (m *MockClient) CreateIssue(ctx context.Context, owner, repo, title, body string) (*gh.Issue, error) {
	m.record("CreateIssue", owner, repo, title, body)
	if m.CreateIssueFunc != nil {
		return m.CreateIssueFunc(ctx, owner, repo, title, body)
	}
	return nil, nil
}

// ListIssues implements Client.ListIssues
func (m *MockClient) ListIssues(ctx context.Context, owner, repo, state string) ([]*gh.Issue, error) {
	m.record("ListIssues", owner, repo, state)
	if m.ListIssuesFunc != nil {
		return m.ListIssuesFunc(ctx, owner, repo, state)
	}
	return nil, nil
}

// GetRateLimit implements Client.GetRateLimit
func (m *MockClient) GetRateLimit(ctx context.Context) (*gh.RateLimits, error) {
	m.record("GetRateLimit")
	if m.GetRateLimitFunc != nil {
		return m.GetRateLimitFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) record(method string, args ...interface{}) {
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
}

// Reset clears all recorded calls
func (m *MockClient) Reset() {
	m.Calls = make([]MockCall, 0)
}

// CallCount returns the number of times a method was called
func (m *MockClient) CallCount(method string) int {
	count := 0
	for _, call := range m.Calls {
		if call.Method == method {
			count++
		}
	}
	return count
}
