package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriter_Save(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	ts := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	path, err := writer.Save("report body\n", ts)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	want := filepath.Join(dir, "prwarden-2026-01-15T10-30-00.txt")
	if path != want {
		t.Errorf("Save() path = %q, want %q", path, want)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "report body\n" {
		t.Errorf("content = %q, want %q", string(content), "report body\n")
	}
}

func TestWriter_Save_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "archive")
	writer := NewWriter(dir)

	path, err := writer.Save("report", time.Now())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("Archived report should exist")
	}
}

func TestWriter_Save_Disabled(t *testing.T) {
	writer := NewWriter("")

	if writer.Enabled() {
		t.Error("Enabled() = true for empty directory")
	}

	path, err := writer.Save("report", time.Now())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if path != "" {
		t.Errorf("Save() path = %q, want empty for disabled writer", path)
	}
}
