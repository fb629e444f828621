package provider

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested resource doesn't exist.
var ErrNotFound = errors.New("not found")

// Provider defines the interface for hosting provider operations.
type Provider interface {
	// Name returns the provider name (github, gitlab, ghcli).
	Name() string

	// ListOpenPullRequests returns all open pull requests for a repository,
	// in the order the hosting API returns them.
	ListOpenPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error)

	// GetLabels returns the label names attached to a pull request.
	GetLabels(ctx context.Context, owner, repo string, number int) ([]string, error)

	// GetChangedFiles returns files changed in a pull request.
	GetChangedFiles(ctx context.Context, owner, repo string, number int) ([]ChangedFile, error)

	// PostComment posts a comment on a pull request.
	PostComment(ctx context.Context, owner, repo string, number int, body string) error

	// ReadFile reads a file from the repository's default branch.
	// Returns ErrNotFound if the file doesn't exist.
	ReadFile(ctx context.Context, owner, repo, path string) ([]byte, error)
}
