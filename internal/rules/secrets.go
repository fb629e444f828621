package rules

import "github.com/prwarden/prwarden/internal/config"

type secretScan struct {
	patterns []config.CompiledPattern
}

func (e secretScan) Name() string { return "security patterns" }

// Evaluate fails each file whose diff matches a forbidden pattern. The
// finding names the file and the pattern, never the matched text, so
// secrets don't leak into reports or comments.
func (e secretScan) Evaluate(pr *PullRequest) Result {
	if len(e.patterns) == 0 {
		return Result{}
	}
	if !pr.FilesKnown {
		return skip("security patterns")
	}

	var findings []Finding
	for _, f := range pr.Files {
		if f.Binary || f.Diff == "" {
			continue
		}
		for _, pat := range e.patterns {
			if pat.Regexp.MatchString(f.Diff) {
				findings = append(findings, failure("Potential security issue in '%s': found pattern matching '%s'", f.Path, pat.Source))
			}
		}
	}
	return Result{Findings: findings}
}
