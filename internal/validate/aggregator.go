package validate

import (
	"context"
	"fmt"

	"github.com/prwarden/prwarden/internal/metrics"
	"github.com/prwarden/prwarden/internal/provider"
	"github.com/prwarden/prwarden/internal/rules"
)

// Aggregator runs the evaluators against one pull request and merges
// their findings into a single Result.
type Aggregator struct {
	provider   provider.Provider
	owner      string
	repo       string
	evaluators []rules.Evaluator
}

// NewAggregator creates an aggregator for a repository.
func NewAggregator(p provider.Provider, owner, repo string, evaluators []rules.Evaluator) *Aggregator {
	return &Aggregator{
		provider:   p,
		owner:      owner,
		repo:       repo,
		evaluators: evaluators,
	}
}

// Evaluate fetches the pull request's labels and changed files, runs
// every evaluator in order, and merges findings in evaluator order.
// A resource that cannot be fetched downgrades to a warning plus a
// skipped-check warning per evaluator that needed it; it never fails
// the pull request on its own.
func (a *Aggregator) Evaluate(ctx context.Context, pr provider.PullRequest) Result {
	result := Result{
		Number:    pr.Number,
		Title:     pr.Title,
		Author:    pr.Author,
		Branch:    pr.Branch,
		CreatedAt: pr.CreatedAt,
	}

	snapshot := rules.PullRequest{
		Number:      pr.Number,
		Title:       pr.Title,
		Author:      pr.Author,
		Branch:      pr.Branch,
		CreatedAt:   pr.CreatedAt,
		Description: pr.Description,
	}

	labels, err := a.provider.GetLabels(ctx, a.owner, a.repo, pr.Number)
	if err != nil {
		metrics.FetchWarning()
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not fetch labels: %v", err))
	} else {
		snapshot.Labels = labels
		snapshot.LabelsKnown = true
	}

	files, err := a.provider.GetChangedFiles(ctx, a.owner, a.repo, pr.Number)
	if err != nil {
		metrics.FetchWarning()
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate files: %v", err))
	} else {
		snapshot.Files = files
		snapshot.FilesKnown = true
	}

	for _, e := range a.evaluators {
		res := e.Evaluate(&snapshot)
		if res.Skipped != "" {
			result.Warnings = append(result.Warnings, "Could not evaluate "+res.Skipped)
			continue
		}
		for _, f := range res.Findings {
			if f.Severity == rules.SeverityFailure {
				result.Failures = append(result.Failures, f.Message)
			} else {
				result.Warnings = append(result.Warnings, f.Message)
			}
		}
	}

	return result
}
