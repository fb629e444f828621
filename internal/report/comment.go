package report

import (
	"fmt"
	"strings"

	"github.com/prwarden/prwarden/internal/validate"
)

// Comment renders the markdown validation comment for one pull request.
func Comment(res *validate.Result) string {
	parts := []string{
		"## PR Validation Report",
		"",
		fmt.Sprintf("### PR #%d: %s", res.Number, res.Title),
		fmt.Sprintf("- **Author**: %s", res.Author),
		fmt.Sprintf("- **Status**: %s", res.Status()),
		"",
	}

	if len(res.Failures) > 0 {
		parts = append(parts, "### ❌ ERRORS:")
		for _, msg := range res.Failures {
			parts = append(parts, "- "+msg)
		}
		parts = append(parts, "")
	}

	if len(res.Warnings) > 0 {
		parts = append(parts, "### ⚠️ WARNINGS:")
		for _, msg := range res.Warnings {
			parts = append(parts, "- "+msg)
		}
		parts = append(parts, "")
	}

	if res.Clean() {
		parts = append(parts, "### ✅ No issues found.")
	}

	return strings.Join(parts, "\n")
}
