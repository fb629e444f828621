package registry

import (
	"strings"
	"testing"

	"github.com/prwarden/prwarden/internal/config"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		kind        string
		host        string
		githubToken string
		gitlabToken string
		want        string
		wantErr     string
	}{
		{
			name:        "explicit github",
			kind:        "github",
			host:        "github.com",
			githubToken: "gh-token",
			want:        "github",
		},
		{
			name:    "explicit github without token",
			kind:    "github",
			host:    "github.com",
			wantErr: "GITHUB_TOKEN",
		},
		{
			name:        "explicit gitlab",
			kind:        "gitlab",
			host:        "gitlab.com",
			gitlabToken: "gl-token",
			want:        "gitlab",
		},
		{
			name:    "explicit gitlab without token",
			kind:    "gitlab",
			host:    "gitlab.com",
			wantErr: "GITLAB_TOKEN",
		},
		{
			name: "explicit ghcli needs no token",
			kind: "ghcli",
			host: "github.com",
			want: "ghcli",
		},
		{
			name:    "unknown kind",
			kind:    "bitbucket",
			host:    "bitbucket.org",
			wantErr: `unknown provider kind "bitbucket"`,
		},
		{
			name:        "detects gitlab host",
			host:        "gitlab.example.com",
			gitlabToken: "gl-token",
			want:        "gitlab",
		},
		{
			name:        "detects github api with token",
			host:        "github.com",
			githubToken: "gh-token",
			want:        "github",
		},
		{
			name: "falls back to gh cli without tokens",
			host: "github.com",
			want: "ghcli",
		},
		{
			name: "enterprise host without token uses gh cli",
			host: "github.example.com",
			want: "ghcli",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Repo: config.RepoConfig{Owner: "owner", Name: "repo", Host: tt.host},
				Provider: config.ProviderConfig{
					Kind:        tt.kind,
					GitHubToken: tt.githubToken,
					GitLabToken: tt.gitlabToken,
				},
			}

			p, err := Resolve(cfg)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Resolve() error = nil, want %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Resolve() error = %v, want %q", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if p.Name() != tt.want {
				t.Errorf("Resolve() provider = %q, want %q", p.Name(), tt.want)
			}
		})
	}
}
