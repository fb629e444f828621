package gitlab

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/prwarden/prwarden/internal/provider"
	"github.com/xanzy/go-gitlab"
)

// GitLabProvider implements provider.Provider for GitLab.
type GitLabProvider struct {
	client *gitlab.Client
	token  string
}

// Option configures the GitLab provider.
type Option func(*GitLabProvider)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(baseURL string) Option {
	return func(p *GitLabProvider) {
		p.client, _ = gitlab.NewClient(p.token, gitlab.WithBaseURL(baseURL+"/api/v4"))
	}
}

// New creates a new GitLab provider. Any host other than gitlab.com is
// treated as a self-managed instance.
func New(host, token string, opts ...Option) (*GitLabProvider, error) {
	var clientOpts []gitlab.ClientOptionFunc
	if host != "" && host != "gitlab.com" {
		clientOpts = append(clientOpts, gitlab.WithBaseURL("https://"+host))
	}

	client, err := gitlab.NewClient(token, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}

	p := &GitLabProvider{client: client, token: token}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Name returns the provider name.
func (p *GitLabProvider) Name() string {
	return "gitlab"
}

// projectPath identifies a project for the GitLab API. The client escapes
// the path itself, so this stays unescaped.
func projectPath(owner, repo string) string {
	return owner + "/" + repo
}

// ListOpenPullRequests returns all open merge requests in API order.
func (p *GitLabProvider) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]provider.PullRequest, error) {
	opts := &gitlab.ListProjectMergeRequestsOptions{
		State:       gitlab.Ptr("opened"),
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}

	var result []provider.PullRequest
	for {
		mrs, resp, err := p.client.MergeRequests.ListProjectMergeRequests(projectPath(owner, repo), opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing merge requests: %w", err)
		}
		for _, mr := range mrs {
			pr := provider.PullRequest{
				Number:      mr.IID,
				Title:       mr.Title,
				Description: mr.Description,
				Branch:      mr.SourceBranch,
				URL:         mr.WebURL,
			}
			if mr.Author != nil {
				pr.Author = mr.Author.Username
			}
			if mr.CreatedAt != nil {
				pr.CreatedAt = *mr.CreatedAt
			}
			if mr.UpdatedAt != nil {
				pr.UpdatedAt = *mr.UpdatedAt
			}
			result = append(result, pr)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// GetLabels returns the label names attached to a merge request.
func (p *GitLabProvider) GetLabels(ctx context.Context, owner, repo string, number int) ([]string, error) {
	mr, _, err := p.client.MergeRequests.GetMergeRequest(projectPath(owner, repo), number, nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching merge request: %w", err)
	}
	return []string(mr.Labels), nil
}

// GetChangedFiles returns files changed in a merge request. The changes
// API carries no per-file sizes or line counts, so line counts come from
// the diff text and sizes from file metadata at the source branch.
func (p *GitLabProvider) GetChangedFiles(ctx context.Context, owner, repo string, number int) ([]provider.ChangedFile, error) {
	mr, _, err := p.client.MergeRequests.GetMergeRequestChanges(projectPath(owner, repo), number, nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching merge request changes: %w", err)
	}

	files := make([]provider.ChangedFile, len(mr.Changes))
	for i, c := range mr.Changes {
		status := "modified"
		if c.NewFile {
			status = "added"
		} else if c.DeletedFile {
			status = "deleted"
		} else if c.RenamedFile {
			status = "renamed"
		}

		additions, deletions := countDiffLines(c.Diff)
		files[i] = provider.ChangedFile{
			Path:      c.NewPath,
			Status:    status,
			Size:      provider.SizeUnknown,
			Additions: additions,
			Deletions: deletions,
			Binary:    strings.HasPrefix(c.Diff, "Binary files "),
			Diff:      c.Diff,
		}
		if files[i].Binary {
			files[i].Diff = ""
		}
	}

	p.fillSizes(ctx, owner, repo, mr.SourceBranch, files)
	return files, nil
}

// countDiffLines counts added and removed lines in a unified diff.
func countDiffLines(diff string) (additions, deletions int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			additions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
	}
	return additions, deletions
}

// fillSizes resolves file sizes at the MR source branch via file metadata
// requests. Failures leave sizes unknown. Deleted files have no blob at
// the source branch and keep SizeUnknown.
func (p *GitLabProvider) fillSizes(ctx context.Context, owner, repo, ref string, files []provider.ChangedFile) {
	if ref == "" {
		return
	}
	for i := range files {
		if files[i].Status == "deleted" {
			continue
		}
		meta, _, err := p.client.RepositoryFiles.GetFileMetaData(projectPath(owner, repo), files[i].Path, &gitlab.GetFileMetaDataOptions{
			Ref: gitlab.Ptr(ref),
		}, gitlab.WithContext(ctx))
		if err != nil {
			continue
		}
		files[i].Size = int64(meta.Size)
	}
}

// PostComment posts a comment on a merge request.
func (p *GitLabProvider) PostComment(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := p.client.Notes.CreateMergeRequestNote(projectPath(owner, repo), number, &gitlab.CreateMergeRequestNoteOptions{
		Body: &body,
	}, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("posting comment: %w", err)
	}
	return nil
}

// ReadFile reads a file from the repository's default branch.
func (p *GitLabProvider) ReadFile(ctx context.Context, owner, repo, path string) ([]byte, error) {
	file, resp, err := p.client.RepositoryFiles.GetFile(projectPath(owner, repo), path, &gitlab.GetFileOptions{
		Ref: gitlab.Ptr("HEAD"),
	}, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, provider.ErrNotFound
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(file.Content)
	if err != nil {
		return nil, fmt.Errorf("decoding file content: %w", err)
	}
	return data, nil
}
