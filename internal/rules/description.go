package rules

import (
	"regexp"
	"unicode/utf8"
)

// sectionPattern recognizes a Changes or Description heading. Kept as a
// lax substring match rather than real markdown parsing.
var sectionPattern = regexp.MustCompile(`(?i)## Changes|## Description`)

type descriptionLength struct {
	min int
}

func (e descriptionLength) Name() string { return "description length" }

func (e descriptionLength) Evaluate(pr *PullRequest) Result {
	n := utf8.RuneCountInString(pr.Description)
	if n < e.min {
		return Result{Findings: []Finding{
			failure("PR description is too short: %d chars, minimum length is %d", n, e.min),
		}}
	}
	return Result{}
}

type descriptionSections struct{}

func (e descriptionSections) Name() string { return "description sections" }

func (e descriptionSections) Evaluate(pr *PullRequest) Result {
	if !sectionPattern.MatchString(pr.Description) {
		return Result{Findings: []Finding{
			warning("PR description should include a 'Changes' or 'Description' section"),
		}}
	}
	return Result{}
}
