package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the validator looks for its config file when none
// is given. A missing file at this path is fine; the environment alone
// can configure a run.
const DefaultPath = "prwarden.yaml"

// Config represents the validator configuration.
type Config struct {
	Repo     RepoConfig     `yaml:"repo"`
	Provider ProviderConfig `yaml:"provider"`
	Rules    RuleSet        `yaml:"rules"`
	Report   ReportConfig   `yaml:"report"`
	Archive  ArchiveConfig  `yaml:"archive"`
}

// RepoConfig identifies the repository to validate.
type RepoConfig struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
	Host  string `yaml:"host"`
}

// ProviderConfig holds hosting provider settings.
type ProviderConfig struct {
	Kind        string `yaml:"kind"` // github, gitlab, or ghcli; empty selects by host and tokens
	GitHubToken string `yaml:"github_token"`
	GitLabToken string `yaml:"gitlab_token"`
}

// RuleSet holds the validation rule settings.
type RuleSet struct {
	MinDescriptionLength int      `yaml:"min_description_length"`
	MaxFileSizeKB        int      `yaml:"max_file_size_kb"`
	RequiredLabels       []string `yaml:"required_labels"`
	ForbiddenPatterns    []string `yaml:"forbidden_patterns"`

	compiled []CompiledPattern
}

// CompiledPattern pairs a forbidden pattern with its configured source,
// so findings can name the pattern without exposing matched text.
type CompiledPattern struct {
	Source string
	Regexp *regexp.Regexp
}

// ReportConfig holds reporting settings.
type ReportConfig struct {
	PostComments bool `yaml:"post_comments"`
}

// ArchiveConfig holds report archive settings. An empty dir disables
// archiving.
type ArchiveConfig struct {
	Dir           string `yaml:"dir"`
	RetentionDays int    `yaml:"retention_days"`
}

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// DefaultForbiddenPatterns returns the stock secret patterns.
func DefaultForbiddenPatterns() []string {
	return []string{
		`API_KEY\s*=\s*['"]\w+['"]`,
		`PASSWORD\s*=\s*['"]\w+['"]`,
		`SECRET\s*=\s*['"]\w+['"]`,
		`TOKEN\s*=\s*['"]\w+['"]`,
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Repo: RepoConfig{
			Host: "github.com",
		},
		Rules: RuleSet{
			MinDescriptionLength: 10,
			MaxFileSizeKB:        500,
			ForbiddenPatterns:    DefaultForbiddenPatterns(),
		},
		Archive: ArchiveConfig{
			RetentionDays: 30,
		},
	}
}

// Load reads the config file at the given path, overlays recognized
// environment variables, and validates the result. A missing file is only
// an error when a non-default path was requested.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
		// Environment-only run.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		// Substitute environment variables
		data = envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
			varName := envVarPattern.FindSubmatch(match)[1]
			return []byte(os.Getenv(string(varName)))
		})

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays recognized environment variables on the config.
// REQUIRED_LABELS is comma-separated; FORBIDDEN_PATTERNS is
// newline-separated, since regular expressions may contain commas.
func (c *Config) applyEnv() error {
	if v := os.Getenv("REPO_OWNER"); v != "" {
		c.Repo.Owner = v
	}
	if v := os.Getenv("REPO_NAME"); v != "" {
		c.Repo.Name = v
	}
	if v := os.Getenv("GITHUB_HOST"); v != "" {
		c.Repo.Host = v
	}
	if v := os.Getenv("MIN_DESCRIPTION_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing MIN_DESCRIPTION_LENGTH: %w", err)
		}
		c.Rules.MinDescriptionLength = n
	}
	if v := os.Getenv("MAX_FILE_SIZE_KB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing MAX_FILE_SIZE_KB: %w", err)
		}
		c.Rules.MaxFileSizeKB = n
	}
	if v := os.Getenv("REQUIRED_LABELS"); v != "" {
		c.Rules.RequiredLabels = splitList(v, ",")
	}
	if v := os.Getenv("FORBIDDEN_PATTERNS"); v != "" {
		c.Rules.ForbiddenPatterns = splitList(v, "\n")
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.Provider.GitHubToken = v
	}
	if v := os.Getenv("GITLAB_TOKEN"); v != "" {
		c.Provider.GitLabToken = v
	}
	return nil
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the config and compiles the forbidden patterns. A bad
// pattern fails the run at startup rather than during evaluation.
func (c *Config) Validate() error {
	if c.Repo.Owner == "" {
		return errors.New("repo owner is required (set repo.owner or REPO_OWNER)")
	}
	if c.Repo.Name == "" {
		return errors.New("repo name is required (set repo.name or REPO_NAME)")
	}
	if c.Rules.MinDescriptionLength <= 0 {
		return fmt.Errorf("min_description_length must be positive, got %d", c.Rules.MinDescriptionLength)
	}
	if c.Rules.MaxFileSizeKB <= 0 {
		return fmt.Errorf("max_file_size_kb must be positive, got %d", c.Rules.MaxFileSizeKB)
	}
	if c.Archive.RetentionDays < 0 {
		return fmt.Errorf("archive retention_days must not be negative, got %d", c.Archive.RetentionDays)
	}
	return c.Rules.CompilePatterns()
}

// CompilePatterns compiles the forbidden patterns case-insensitively.
// It must run again after ForbiddenPatterns changes.
func (r *RuleSet) CompilePatterns() error {
	compiled := make([]CompiledPattern, 0, len(r.ForbiddenPatterns))
	for _, p := range r.ForbiddenPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return fmt.Errorf("compiling forbidden pattern %q: %w", p, err)
		}
		compiled = append(compiled, CompiledPattern{Source: p, Regexp: re})
	}
	r.compiled = compiled
	return nil
}

// Patterns returns the compiled forbidden patterns. Empty until
// CompilePatterns runs.
func (r *RuleSet) Patterns() []CompiledPattern {
	return r.compiled
}
