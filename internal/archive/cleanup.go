package archive

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cleaner removes archived reports older than a retention period.
type Cleaner struct {
	dir           string
	retentionDays int
}

// NewCleaner creates a new Cleaner. Retention of zero keeps everything.
func NewCleaner(dir string, retentionDays int) *Cleaner {
	return &Cleaner{dir: dir, retentionDays: retentionDays}
}

// Clean removes archived reports older than the retention period and
// returns the number of files deleted. Only prwarden-*.txt files are
// touched; a missing archive directory is not an error.
func (c *Cleaner) Clean() (int, error) {
	if c.dir == "" || c.retentionDays <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	threshold := time.Now().AddDate(0, 0, -c.retentionDays)
	var deleted int
	for _, entry := range entries {
		if entry.IsDir() || !isArchivedReport(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(threshold) {
			if os.Remove(filepath.Join(c.dir, entry.Name())) == nil {
				deleted++
			}
		}
	}

	return deleted, nil
}

func isArchivedReport(name string) bool {
	return strings.HasPrefix(name, "prwarden-") && strings.HasSuffix(name, ".txt")
}
