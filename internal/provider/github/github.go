package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v60/github"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/prwarden/prwarden/internal/provider"
)

// GitHubProvider implements provider.Provider for GitHub.
type GitHubProvider struct {
	client *github.Client
	token  string
}

// Option configures the GitHub provider.
type Option func(*GitHubProvider)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(p *GitHubProvider) {
		p.client.BaseURL, _ = p.client.BaseURL.Parse(url + "/")
	}
}

// New creates a new GitHub provider. Any host other than github.com is
// treated as a GitHub Enterprise instance. Transient request failures are
// retried a bounded number of times; an exhausted retry surfaces the error
// to the caller.
func New(host, token string, opts ...Option) (*GitHubProvider, error) {
	retry := retryablehttp.NewClient()
	retry.RetryMax = 3
	retry.Logger = nil
	retry.HTTPClient.Transport = &tokenTransport{token: token}

	client := github.NewClient(retry.StandardClient())
	if host != "" && host != "github.com" {
		var err error
		client, err = client.WithEnterpriseURLs("https://"+host, "https://"+host)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise host: %w", err)
		}
	}

	p := &GitHubProvider{
		client: client,
		token:  token,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// tokenTransport adds authorization header to requests.
type tokenTransport struct {
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

// Name returns the provider name.
func (p *GitHubProvider) Name() string {
	return "github"
}

// ListOpenPullRequests returns all open pull requests in API order.
func (p *GitHubProvider) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]provider.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var result []provider.PullRequest
	for {
		prs, resp, err := p.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing pull requests: %w", err)
		}
		for _, pr := range prs {
			result = append(result, provider.PullRequest{
				Number:      pr.GetNumber(),
				Title:       pr.GetTitle(),
				Description: pr.GetBody(),
				Author:      pr.GetUser().GetLogin(),
				Branch:      pr.GetHead().GetRef(),
				URL:         pr.GetHTMLURL(),
				CreatedAt:   pr.GetCreatedAt().Time,
				UpdatedAt:   pr.GetUpdatedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// GetLabels returns the label names attached to a pull request.
func (p *GitHubProvider) GetLabels(ctx context.Context, owner, repo string, number int) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}

	var labels []string
	for {
		ls, resp, err := p.client.Issues.ListLabelsByIssue(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing labels: %w", err)
		}
		for _, l := range ls {
			labels = append(labels, l.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return labels, nil
}

// GetChangedFiles returns files changed in a pull request. The files
// listing carries no blob sizes, so sizes are resolved separately from the
// head tree; files whose size cannot be determined report SizeUnknown.
func (p *GitHubProvider) GetChangedFiles(ctx context.Context, owner, repo string, number int) ([]provider.ChangedFile, error) {
	opts := &github.ListOptions{PerPage: 100}

	var files []provider.ChangedFile
	for {
		fs, resp, err := p.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing changed files: %w", err)
		}
		for _, f := range fs {
			files = append(files, provider.ChangedFile{
				Path:      f.GetFilename(),
				Status:    f.GetStatus(),
				Size:      provider.SizeUnknown,
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
				Diff:      f.GetPatch(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	p.fillSizes(ctx, owner, repo, number, files)
	return files, nil
}

// fillSizes resolves blob sizes at the PR head with one recursive tree
// fetch. Failures leave sizes unknown rather than failing the whole files
// fetch. Removed files have no blob at head and keep SizeUnknown.
func (p *GitHubProvider) fillSizes(ctx context.Context, owner, repo string, number int, files []provider.ChangedFile) {
	pr, _, err := p.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return
	}

	tree, _, err := p.client.Git.GetTree(ctx, owner, repo, pr.GetHead().GetSHA(), true)
	if err != nil {
		return
	}

	sizes := make(map[string]int64, len(tree.Entries))
	for _, e := range tree.Entries {
		if e.GetType() == "blob" {
			sizes[e.GetPath()] = int64(e.GetSize())
		}
	}

	for i := range files {
		if files[i].Status == "removed" {
			continue
		}
		if size, ok := sizes[files[i].Path]; ok {
			files[i].Size = size
		}
	}
}

// PostComment posts a comment on a pull request.
func (p *GitHubProvider) PostComment(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := p.client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: &body,
	})
	if err != nil {
		return fmt.Errorf("posting comment: %w", err)
	}
	return nil
}

// ReadFile reads a file from the repository's default branch.
func (p *GitHubProvider) ReadFile(ctx context.Context, owner, repo, path string) ([]byte, error) {
	content, _, resp, err := p.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, provider.ErrNotFound
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if content == nil {
		return nil, fmt.Errorf("reading file: %s is not a file", path)
	}

	data, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding file content: %w", err)
	}
	return []byte(data), nil
}
