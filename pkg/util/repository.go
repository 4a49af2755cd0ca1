// Package util provides shared utility functions
package util

import (
	"strings"

	gherrors "github.com/quillhq/ghops/internal/errors"
)

// SplitRepository validates and parses a GitHub repository string.
// Expected format: owner/repo.
// Returns the owner and repository name, or an error if invalid.
func SplitRepository(repository string) (string, string, error) {
	// Check minimum length (at least "a/b")
	if len(repository) < 3 {
		return "", "", gherrors.NewValidationError("repository",
			"invalid format (expected owner/repo, got: "+repository+")")
	}

	// Check that it's not a URL or full path
	if strings.Contains(repository, "://") || strings.Contains(repository, "github.com") {
		return "", "", gherrors.NewValidationError("repository",
			"use short format (owner/repo), not a URL")
	}

	if strings.Count(repository, "/") != 1 {
		return "", "", gherrors.NewValidationError("repository",
			"invalid format (expected owner/repo, got: "+repository+")")
	}

	parts := strings.SplitN(repository, "/", 2)
	owner := parts[0]
	repo := parts[1]

	if len(owner) < 1 || len(repo) < 1 {
		return "", "", gherrors.NewValidationError("repository",
			"owner and repo name cannot be empty")
	}

	if strings.ContainsAny(owner, "/@#$%^&*()") {
		return "", "", gherrors.NewValidationError("repository",
			"owner contains invalid characters")
	}

	if strings.ContainsAny(repo, "/@#$%^&*()") {
		return "", "", gherrors.NewValidationError("repository",
			"repo name contains invalid characters")
	}

	return owner, repo, nil
}

// QualifyRepository resolves a repository argument against a default owner.
// Accepts "owner/repo", a bare "repo" (qualified with defaultOwner, matching
// how the tool operates on the authenticated account), or a GitHub URL.
func QualifyRepository(repository, defaultOwner string) (string, string, error) {
	if strings.Contains(repository, "://") || strings.HasPrefix(repository, "git@") ||
		strings.Contains(repository, "github.com") {
		return ParseRepositoryURL(repository)
	}
	if !strings.Contains(repository, "/") {
		if repository == "" {
			return "", "", gherrors.NewValidationError("repository", "repository name cannot be empty")
		}
		if defaultOwner == "" {
			return "", "", gherrors.NewValidationError("repository",
				"bare repository name requires a known account (use owner/repo)")
		}
		return defaultOwner, repository, nil
	}
	return SplitRepository(repository)
}

// ParseRepositoryURL extracts owner and repo from a GitHub URL.
// Supports HTTPS and SSH URLs.
func ParseRepositoryURL(url string) (string, string, error) {
	// Handle SSH URL: git@github.com:owner/repo.git
	if strings.HasPrefix(url, "git@github.com:") {
		path := strings.TrimPrefix(url, "git@github.com:")
		path = strings.TrimSuffix(path, ".git")
		return SplitRepository(path)
	}

	// Handle HTTPS URL: https://github.com/owner/repo.git
	if strings.Contains(url, "github.com/") {
		idx := strings.Index(url, "github.com/")
		path := url[idx+len("github.com/"):]
		path = strings.TrimSuffix(path, ".git")
		path = strings.TrimSuffix(path, "/")
		return SplitRepository(path)
	}

	return "", "", gherrors.NewValidationError("url", "not a GitHub URL")
}
