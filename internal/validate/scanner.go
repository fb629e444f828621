package validate

import (
	"context"
	"fmt"
	"log"

	"github.com/prwarden/prwarden/internal/config"
	"github.com/prwarden/prwarden/internal/metrics"
	"github.com/prwarden/prwarden/internal/provider"
	"github.com/prwarden/prwarden/internal/rules"
)

// Scanner validates every open pull request in a repository.
type Scanner struct {
	provider provider.Provider
	cfg      *config.Config
}

// NewScanner creates a scanner for the configured repository.
func NewScanner(p provider.Provider, cfg *config.Config) *Scanner {
	return &Scanner{
		provider: p,
		cfg:      cfg,
	}
}

// Scan lists the repository's open pull requests and validates each one
// sequentially, in the order the hosting API returned them. A listing
// failure is fatal: no partial results, no report.
func (s *Scanner) Scan(ctx context.Context) ([]Result, error) {
	owner, repo := s.cfg.Repo.Owner, s.cfg.Repo.Name

	prs, err := s.provider.ListOpenPullRequests(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("listing open pull requests: %w", err)
	}

	agg := NewAggregator(s.provider, owner, repo, rules.Default(s.ruleSet(ctx)))

	results := make([]Result, 0, len(prs))
	for _, pr := range prs {
		metrics.PRScanned()
		res := agg.Evaluate(ctx, pr)
		if res.Passed() {
			metrics.PRPassed()
		} else {
			metrics.PRFailed()
		}
		results = append(results, res)
	}
	return results, nil
}

// ruleSet resolves the effective rules: repo-level overrides merged over
// the configured base. Broken overrides are logged and ignored rather
// than failing the run.
func (s *Scanner) ruleSet(ctx context.Context) config.RuleSet {
	base := s.cfg.Rules

	overrides, err := config.LoadRepoOverrides(ctx, s.provider, s.cfg.Repo.Owner, s.cfg.Repo.Name)
	if err != nil {
		log.Printf("Failed to load repo overrides: %v", err)
		return base
	}
	if overrides == nil {
		return base
	}

	merged := config.MergeRules(base, overrides)
	if err := merged.CompilePatterns(); err != nil {
		log.Printf("Failed to apply repo overrides: %v", err)
		return base
	}
	log.Printf("Applying rule overrides from %s", config.OverridesPath)
	return merged
}
