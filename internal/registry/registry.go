package registry

import (
	"fmt"
	"strings"

	"github.com/prwarden/prwarden/internal/config"
	"github.com/prwarden/prwarden/internal/provider"
	"github.com/prwarden/prwarden/internal/provider/ghcli"
	"github.com/prwarden/prwarden/internal/provider/github"
	"github.com/prwarden/prwarden/internal/provider/gitlab"
)

// Resolve picks the hosting provider for the configured repository.
// An explicit provider.kind wins; otherwise the host and available
// tokens decide.
func Resolve(cfg *config.Config) (provider.Provider, error) {
	kind := cfg.Provider.Kind
	if kind == "" {
		kind = detectKind(cfg)
	}

	switch kind {
	case "github":
		if cfg.Provider.GitHubToken == "" {
			return nil, fmt.Errorf("github provider requires GITHUB_TOKEN")
		}
		return github.New(cfg.Repo.Host, cfg.Provider.GitHubToken)
	case "gitlab":
		if cfg.Provider.GitLabToken == "" {
			return nil, fmt.Errorf("gitlab provider requires GITLAB_TOKEN")
		}
		return gitlab.New(cfg.Repo.Host, cfg.Provider.GitLabToken)
	case "ghcli":
		return ghcli.New(cfg.Repo.Host), nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", kind)
	}
}

// detectKind guesses the provider: GitLab hosts go to the gitlab API,
// GitHub hosts use the API when a token is set and the gh CLI otherwise.
func detectKind(cfg *config.Config) string {
	if strings.Contains(cfg.Repo.Host, "gitlab") {
		return "gitlab"
	}
	if cfg.Provider.GitHubToken != "" {
		return "github"
	}
	return "ghcli"
}
