package ghcli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cli/go-gh/v2"
	"github.com/prwarden/prwarden/internal/provider"
)

// execGH runs the gh binary. Swapped out in tests.
var execGH = gh.ExecContext

// CLIProvider talks to GitHub through an authenticated gh binary. It is
// the fallback transport when no API token is configured: auth lives in
// the user's gh config, not in the environment.
type CLIProvider struct {
	host string
}

// New creates a CLI-backed provider. An empty host means github.com.
func New(host string) *CLIProvider {
	if host == "" {
		host = "github.com"
	}
	return &CLIProvider{host: host}
}

// Name returns "ghcli".
func (p *CLIProvider) Name() string {
	return "ghcli"
}

// api invokes gh api against the configured host and returns stdout.
func (p *CLIProvider) api(ctx context.Context, path string, extra ...string) ([]byte, error) {
	args := append([]string{"api", path, "--hostname", p.host}, extra...)

	stdout, stderr, err := execGH(ctx, args...)
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "HTTP 404") || strings.Contains(msg, "Not Found") {
			return nil, provider.ErrNotFound
		}
		if msg != "" {
			return nil, fmt.Errorf("gh api %s: %s", path, msg)
		}
		return nil, fmt.Errorf("gh api %s: %w", path, err)
	}

	return stdout.Bytes(), nil
}

type rawPullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
	Head struct {
		Ref string `json:"ref"`
	} `json:"head"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListOpenPullRequests returns open pull requests in API order.
func (p *CLIProvider) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]provider.PullRequest, error) {
	path := fmt.Sprintf("repos/%s/%s/pulls?state=open&per_page=100", owner, repo)
	out, err := p.api(ctx, path)
	if err != nil {
		return nil, err
	}

	var raw []rawPullRequest
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("parsing pull requests: %w", err)
	}

	prs := make([]provider.PullRequest, 0, len(raw))
	for _, pr := range raw {
		prs = append(prs, provider.PullRequest{
			Number:      pr.Number,
			Title:       pr.Title,
			Description: pr.Body,
			Author:      pr.User.Login,
			Branch:      pr.Head.Ref,
			URL:         pr.HTMLURL,
			CreatedAt:   pr.CreatedAt,
			UpdatedAt:   pr.UpdatedAt,
		})
	}
	return prs, nil
}

// GetLabels returns the label names attached to a pull request.
func (p *CLIProvider) GetLabels(ctx context.Context, owner, repo string, number int) ([]string, error) {
	path := fmt.Sprintf("repos/%s/%s/issues/%d/labels", owner, repo, number)
	out, err := p.api(ctx, path)
	if err != nil {
		return nil, err
	}

	var raw []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("parsing labels: %w", err)
	}

	labels := make([]string, 0, len(raw))
	for _, l := range raw {
		labels = append(labels, l.Name)
	}
	return labels, nil
}

// GetChangedFiles returns files changed in a pull request. The files
// endpoint carries no blob sizes, so sizes stay unknown here.
func (p *CLIProvider) GetChangedFiles(ctx context.Context, owner, repo string, number int) ([]provider.ChangedFile, error) {
	path := fmt.Sprintf("repos/%s/%s/pulls/%d/files?per_page=100", owner, repo, number)
	out, err := p.api(ctx, path)
	if err != nil {
		return nil, err
	}

	var raw []struct {
		Filename  string `json:"filename"`
		Status    string `json:"status"`
		Additions int    `json:"additions"`
		Deletions int    `json:"deletions"`
		Patch     string `json:"patch"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("parsing changed files: %w", err)
	}

	files := make([]provider.ChangedFile, 0, len(raw))
	for _, f := range raw {
		files = append(files, provider.ChangedFile{
			Path:      f.Filename,
			Status:    f.Status,
			Size:      provider.SizeUnknown,
			Additions: f.Additions,
			Deletions: f.Deletions,
			Diff:      f.Patch,
		})
	}
	return files, nil
}

// PostComment posts a comment on a pull request.
func (p *CLIProvider) PostComment(ctx context.Context, owner, repo string, number int, body string) error {
	path := fmt.Sprintf("repos/%s/%s/issues/%d/comments", owner, repo, number)
	_, err := p.api(ctx, path, "-f", "body="+body)
	return err
}

// ReadFile reads a file from the repository's default branch. Returns
// provider.ErrNotFound if the file doesn't exist.
func (p *CLIProvider) ReadFile(ctx context.Context, owner, repo, path string) ([]byte, error) {
	apiPath := fmt.Sprintf("repos/%s/%s/contents/%s", owner, repo, path)
	out, err := p.api(ctx, apiPath)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Type     string `json:"type"`
		Encoding string `json:"encoding"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("parsing file contents: %w", err)
	}
	if raw.Type != "" && raw.Type != "file" {
		return nil, fmt.Errorf("%s is not a file", path)
	}

	// The contents API wraps base64 at 60 columns.
	content := strings.ReplaceAll(raw.Content, "\n", "")
	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("decoding file contents: %w", err)
	}
	return data, nil
}
