package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/prwarden/prwarden/internal/provider"
	"gopkg.in/yaml.v3"
)

// OverridesPath is where repositories keep their rule overrides.
const OverridesPath = ".prwarden.yaml"

// RuleOverrides is the optional repository-level rule configuration.
type RuleOverrides struct {
	Rules OverrideRules `yaml:"rules"`
}

// OverrideRules mirrors RuleSet with optional fields. Nil fields keep the
// process-wide value.
type OverrideRules struct {
	MinDescriptionLength *int     `yaml:"min_description_length"`
	MaxFileSizeKB        *int     `yaml:"max_file_size_kb"`
	RequiredLabels       []string `yaml:"required_labels"`
	ForbiddenPatterns    []string `yaml:"forbidden_patterns"`
}

// FileReader reads files from a repository's default branch.
type FileReader interface {
	ReadFile(ctx context.Context, owner, repo, path string) ([]byte, error)
}

// LoadRepoOverrides loads rule overrides from .prwarden.yaml in the
// repository. A missing file yields nil overrides, not an error.
func LoadRepoOverrides(ctx context.Context, reader FileReader, owner, repo string) (*RuleOverrides, error) {
	data, err := reader.ReadFile(ctx, owner, repo, OverridesPath)
	if errors.Is(err, provider.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading rule overrides: %w", err)
	}

	var o RuleOverrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parsing rule overrides: %w", err)
	}

	return &o, nil
}
