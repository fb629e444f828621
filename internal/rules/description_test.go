package rules

import (
	"strings"
	"testing"
)

func TestDescriptionLength_Evaluate(t *testing.T) {
	tests := []struct {
		name        string
		min         int
		description string
		wantMessage string
	}{
		{
			name:        "long enough",
			min:         10,
			description: "This adds retry handling to the fetcher.",
		},
		{
			name:        "exactly at minimum",
			min:         10,
			description: "ten chars!",
		},
		{
			name:        "too short",
			min:         10,
			description: "WIP",
			wantMessage: "PR description is too short: 3 chars, minimum length is 10",
		},
		{
			name:        "empty",
			min:         10,
			description: "",
			wantMessage: "PR description is too short: 0 chars, minimum length is 10",
		},
		{
			name:        "counts runes not bytes",
			min:         10,
			description: "héllo wörld",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := descriptionLength{min: tt.min}
			res := e.Evaluate(&PullRequest{Description: tt.description})

			if tt.wantMessage == "" {
				if len(res.Findings) != 0 {
					t.Errorf("Evaluate() findings = %v, want none", res.Findings)
				}
				return
			}
			if len(res.Findings) != 1 {
				t.Fatalf("Evaluate() findings = %d, want 1", len(res.Findings))
			}
			f := res.Findings[0]
			if f.Severity != SeverityFailure {
				t.Errorf("Severity = %v, want failure", f.Severity)
			}
			if f.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", f.Message, tt.wantMessage)
			}
		})
	}
}

func TestDescriptionSections_Evaluate(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantWarning bool
	}{
		{
			name:        "has changes section",
			description: "## Changes\n\nAdded a thing.",
		},
		{
			name:        "has description section",
			description: "Intro\n\n## Description\n\nDetails.",
		},
		{
			name:        "case insensitive",
			description: "## DESCRIPTION\nstuff",
		},
		{
			name:        "heading without markdown marker",
			description: "Changes: added a thing",
			wantWarning: true,
		},
		{
			name:        "no section",
			description: "Just some prose about the change.",
			wantWarning: true,
		},
		{
			name:        "empty",
			description: "",
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := descriptionSections{}
			res := e.Evaluate(&PullRequest{Description: tt.description})

			if !tt.wantWarning {
				if len(res.Findings) != 0 {
					t.Errorf("Evaluate() findings = %v, want none", res.Findings)
				}
				return
			}
			if len(res.Findings) != 1 {
				t.Fatalf("Evaluate() findings = %d, want 1", len(res.Findings))
			}
			f := res.Findings[0]
			if f.Severity != SeverityWarning {
				t.Errorf("Severity = %v, want warning", f.Severity)
			}
			if !strings.Contains(f.Message, "'Changes' or 'Description' section") {
				t.Errorf("Message = %q, want section hint", f.Message)
			}
		})
	}
}
