package rules

import (
	"regexp"

	"github.com/prwarden/prwarden/internal/provider"
)

// binaryExtPattern matches extensions reviewed as binaries.
var binaryExtPattern = regexp.MustCompile(`(?i)\.(exe|bin|jar|war|zip|tar|gz|rar)$`)

// largeChangeThreshold is the per-file changed-line count that draws a
// review-size warning.
const largeChangeThreshold = 500

// deleted reports whether a changed file no longer exists at the PR head.
// GitHub says "removed", GitLab says "deleted".
func deleted(f provider.ChangedFile) bool {
	return f.Status == "removed" || f.Status == "deleted"
}

type fileSize struct {
	maxKB int
}

func (e fileSize) Name() string { return "file sizes" }

// Evaluate fails each file strictly larger than the configured maximum.
// A file exactly at the limit passes. Deleted files have no size to
// check; files whose size could not be determined warn instead.
func (e fileSize) Evaluate(pr *PullRequest) Result {
	if !pr.FilesKnown {
		return skip("file sizes")
	}

	maxBytes := int64(e.maxKB) * 1024
	var findings []Finding
	for _, f := range pr.Files {
		if deleted(f) {
			continue
		}
		if f.Size == provider.SizeUnknown {
			findings = append(findings, warning("Could not determine size of file '%s'", f.Path))
			continue
		}
		if f.Size > maxBytes {
			sizeKB := (f.Size + 1023) / 1024
			findings = append(findings, failure("File '%s' exceeds maximum size of %dKB (%dKB)", f.Path, e.maxKB, sizeKB))
		}
	}
	return Result{Findings: findings}
}

type largeChanges struct{}

func (e largeChanges) Name() string { return "change size" }

func (e largeChanges) Evaluate(pr *PullRequest) Result {
	if !pr.FilesKnown {
		return skip("change size")
	}

	var findings []Finding
	for _, f := range pr.Files {
		changes := f.Additions + f.Deletions
		if changes > largeChangeThreshold {
			findings = append(findings, warning("File '%s' has %d changes (%d additions, %d deletions)", f.Path, changes, f.Additions, f.Deletions))
		}
	}
	return Result{Findings: findings}
}

type binaryFiles struct{}

func (e binaryFiles) Name() string { return "binary files" }

// Evaluate warns on each binary file, flagged by the provider or by
// extension, since binary diffs can't be reviewed as text.
func (e binaryFiles) Evaluate(pr *PullRequest) Result {
	if !pr.FilesKnown {
		return skip("binary files")
	}

	var findings []Finding
	for _, f := range pr.Files {
		if f.Binary || binaryExtPattern.MatchString(f.Path) {
			findings = append(findings, warning("Binary file '%s' detected in PR", f.Path))
		}
	}
	return Result{Findings: findings}
}
