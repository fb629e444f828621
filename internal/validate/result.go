package validate

import "time"

// Status values as reports print them.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// Result is the validation outcome for one pull request.
type Result struct {
	Number    int
	Title     string
	Author    string
	Branch    string
	CreatedAt time.Time

	Failures []string
	Warnings []string
}

// Passed reports whether the pull request passed every check. Warnings
// never affect the outcome.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Status returns PASS or FAIL.
func (r *Result) Status() string {
	if r.Passed() {
		return StatusPass
	}
	return StatusFail
}

// Clean reports whether the result has no failures and no warnings.
func (r *Result) Clean() bool {
	return len(r.Failures) == 0 && len(r.Warnings) == 0
}
