package rules

import (
	"fmt"
	"time"

	"github.com/prwarden/prwarden/internal/config"
	"github.com/prwarden/prwarden/internal/provider"
)

// Severity classifies a finding. Failures fail the pull request; warnings
// never affect its status.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityFailure
)

// String returns the severity name.
func (s Severity) String() string {
	if s == SeverityFailure {
		return "failure"
	}
	return "warning"
}

// Finding is one warning or failure produced by an evaluator.
type Finding struct {
	Severity Severity
	Message  string
}

// Result is the outcome of one evaluator run. Either Findings holds what
// the evaluator found, or Skipped names the check it could not judge.
type Result struct {
	Findings []Finding
	Skipped  string
}

// Evaluator judges one aspect of a pull request. Evaluate never reports
// an error: a check that cannot be judged skips instead.
type Evaluator interface {
	Name() string
	Evaluate(pr *PullRequest) Result
}

// PullRequest is the immutable snapshot evaluators judge. LabelsKnown and
// FilesKnown report whether those resources could be fetched; evaluators
// that need them skip when they are not.
type PullRequest struct {
	Number      int
	Title       string
	Author      string
	Branch      string
	CreatedAt   time.Time
	Description string

	Labels      []string
	LabelsKnown bool

	Files      []provider.ChangedFile
	FilesKnown bool
}

// Default returns the standard evaluators in report order. Adding a rule
// means appending to this list.
func Default(cfg config.RuleSet) []Evaluator {
	return []Evaluator{
		descriptionLength{min: cfg.MinDescriptionLength},
		descriptionSections{},
		requiredLabels{required: cfg.RequiredLabels},
		fileSize{maxKB: cfg.MaxFileSizeKB},
		largeChanges{},
		binaryFiles{},
		secretScan{patterns: cfg.Patterns()},
	}
}

func warning(format string, args ...any) Finding {
	return Finding{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) Finding {
	return Finding{Severity: SeverityFailure, Message: fmt.Sprintf(format, args...)}
}

func skip(check string) Result {
	return Result{Skipped: check}
}
