package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Writer stores rendered reports under a directory. An empty directory
// disables archiving and makes Save a no-op.
type Writer struct {
	dir string
}

// NewWriter creates a new Writer for the specified directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Enabled reports whether an archive directory is configured.
func (w *Writer) Enabled() bool {
	return w.dir != ""
}

// Save writes a report to a timestamped file and returns its path.
// Filename format: prwarden-2006-01-02T15-04-05.txt
func (w *Writer) Save(report string, now time.Time) (string, error) {
	if !w.Enabled() {
		return "", nil
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating archive directory: %w", err)
	}

	filename := fmt.Sprintf("prwarden-%s.txt", now.Format("2006-01-02T15-04-05"))
	path := filepath.Join(w.dir, filename)

	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return "", fmt.Errorf("writing archived report: %w", err)
	}

	return path, nil
}
