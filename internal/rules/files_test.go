package rules

import (
	"reflect"
	"testing"

	"github.com/prwarden/prwarden/internal/provider"
)

func TestFileSize_Evaluate(t *testing.T) {
	tests := []struct {
		name         string
		maxKB        int
		files        []provider.ChangedFile
		filesKnown   bool
		wantSkipped  string
		wantFailures []string
		wantWarnings []string
	}{
		{
			name:       "under limit",
			maxKB:      500,
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "main.go", Size: 2048},
			},
		},
		{
			name:       "exactly at limit passes",
			maxKB:      500,
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "data.json", Size: 500 * 1024},
			},
		},
		{
			name:       "one byte over fails",
			maxKB:      500,
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "data.json", Size: 500*1024 + 1},
			},
			wantFailures: []string{
				"File 'data.json' exceeds maximum size of 500KB (501KB)",
			},
		},
		{
			name:       "well over limit",
			maxKB:      500,
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "dump.sql", Size: 600 * 1024},
			},
			wantFailures: []string{
				"File 'dump.sql' exceeds maximum size of 500KB (600KB)",
			},
		},
		{
			name:       "unknown size warns",
			maxKB:      500,
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "mystery.go", Size: provider.SizeUnknown},
			},
			wantWarnings: []string{
				"Could not determine size of file 'mystery.go'",
			},
		},
		{
			name:       "deleted file ignored",
			maxKB:      500,
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "gone.bin", Status: "removed", Size: provider.SizeUnknown},
				{Path: "also-gone.go", Status: "deleted", Size: provider.SizeUnknown},
			},
		},
		{
			name:        "files unknown",
			maxKB:       500,
			wantSkipped: "file sizes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := fileSize{maxKB: tt.maxKB}
			res := e.Evaluate(&PullRequest{Files: tt.files, FilesKnown: tt.filesKnown})
			assertFindings(t, res, tt.wantSkipped, tt.wantFailures, tt.wantWarnings)
		})
	}
}

func TestLargeChanges_Evaluate(t *testing.T) {
	tests := []struct {
		name         string
		files        []provider.ChangedFile
		filesKnown   bool
		wantSkipped  string
		wantWarnings []string
	}{
		{
			name:       "small change",
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "main.go", Additions: 40, Deletions: 10},
			},
		},
		{
			name:       "exactly at threshold passes",
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "main.go", Additions: 300, Deletions: 200},
			},
		},
		{
			name:       "over threshold warns",
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "generated.go", Additions: 600, Deletions: 100},
			},
			wantWarnings: []string{
				"File 'generated.go' has 700 changes (600 additions, 100 deletions)",
			},
		},
		{
			name:        "files unknown",
			wantSkipped: "change size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := largeChanges{}
			res := e.Evaluate(&PullRequest{Files: tt.files, FilesKnown: tt.filesKnown})
			assertFindings(t, res, tt.wantSkipped, nil, tt.wantWarnings)
		})
	}
}

func TestBinaryFiles_Evaluate(t *testing.T) {
	tests := []struct {
		name         string
		files        []provider.ChangedFile
		filesKnown   bool
		wantSkipped  string
		wantWarnings []string
	}{
		{
			name:       "text files only",
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "main.go"},
				{Path: "README.md"},
			},
		},
		{
			name:       "flagged by provider",
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "logo.png", Binary: true},
			},
			wantWarnings: []string{
				"Binary file 'logo.png' detected in PR",
			},
		},
		{
			name:       "flagged by extension",
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "tool.exe"},
				{Path: "archive.tar.gz"},
				{Path: "LIB.JAR"},
			},
			wantWarnings: []string{
				"Binary file 'tool.exe' detected in PR",
				"Binary file 'archive.tar.gz' detected in PR",
				"Binary file 'LIB.JAR' detected in PR",
			},
		},
		{
			name:       "extension must end the path",
			filesKnown: true,
			files: []provider.ChangedFile{
				{Path: "zip/reader.go"},
				{Path: "exe.txt"},
			},
		},
		{
			name:        "files unknown",
			wantSkipped: "binary files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := binaryFiles{}
			res := e.Evaluate(&PullRequest{Files: tt.files, FilesKnown: tt.filesKnown})
			assertFindings(t, res, tt.wantSkipped, nil, tt.wantWarnings)
		})
	}
}

// assertFindings checks a result's skip reason plus its failure and
// warning messages in order.
func assertFindings(t *testing.T, res Result, wantSkipped string, wantFailures, wantWarnings []string) {
	t.Helper()

	if res.Skipped != wantSkipped {
		t.Errorf("Skipped = %q, want %q", res.Skipped, wantSkipped)
	}

	var failures, warnings []string
	for _, f := range res.Findings {
		if f.Severity == SeverityFailure {
			failures = append(failures, f.Message)
		} else {
			warnings = append(warnings, f.Message)
		}
	}
	if !reflect.DeepEqual(failures, wantFailures) {
		t.Errorf("failures = %v, want %v", failures, wantFailures)
	}
	if !reflect.DeepEqual(warnings, wantWarnings) {
		t.Errorf("warnings = %v, want %v", warnings, wantWarnings)
	}
}
