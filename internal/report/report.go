package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/prwarden/prwarden/internal/validate"
)

var (
	passStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

const separatorWidth = 60

// Renderer writes validation reports as text. A styled renderer colors
// the PASS/FAIL statuses; the plain one suits archives and tests.
type Renderer struct {
	styled bool
}

// NewRenderer creates a renderer. Pass styled=false for output that
// lands in files.
func NewRenderer(styled bool) *Renderer {
	return &Renderer{styled: styled}
}

// Write renders the report for one validation run: header, one block per
// pull request separated by = rules, and the overall verdict.
func (r *Renderer) Write(w io.Writer, owner, repo, host string, results []validate.Result) error {
	sep := strings.Repeat("=", separatorWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "Validating PRs for %s/%s on %s\n", owner, repo, host)
	fmt.Fprintln(&b, sep)
	fmt.Fprintf(&b, "Found %d open pull requests\n\n", len(results))

	allPassed := true
	for i := range results {
		res := &results[i]
		if !res.Passed() {
			allPassed = false
		}
		r.writeBlock(&b, res)
		fmt.Fprintln(&b, sep)
	}

	if allPassed {
		b.WriteString("\nValidation complete: All PRs passed\n")
	} else {
		b.WriteString("\nValidation complete: Some PRs failed\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) writeBlock(b *strings.Builder, res *validate.Result) {
	fmt.Fprintf(b, "PR #%d: %s\n", res.Number, res.Title)
	fmt.Fprintf(b, "Author: %s\n", res.Author)
	fmt.Fprintf(b, "Branch: %s\n", res.Branch)
	fmt.Fprintf(b, "Created: %s\n", res.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(b, "Status: %s\n\n", r.status(res))

	if len(res.Failures) > 0 {
		b.WriteString("ERRORS:\n")
		for _, msg := range res.Failures {
			fmt.Fprintf(b, "  - %s\n", msg)
		}
		b.WriteString("\n")
	}

	if len(res.Warnings) > 0 {
		b.WriteString("WARNINGS:\n")
		for _, msg := range res.Warnings {
			fmt.Fprintf(b, "  - %s\n", msg)
		}
		b.WriteString("\n")
	}

	if res.Clean() {
		b.WriteString("No issues found.\n")
	}
}

func (r *Renderer) status(res *validate.Result) string {
	s := res.Status()
	if !r.styled {
		return s
	}
	if res.Passed() {
		return passStyle.Render(s)
	}
	return failStyle.Render(s)
}
