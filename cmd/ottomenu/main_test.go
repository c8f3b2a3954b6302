package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenLogFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "logs", "nested", "ottomenu.log")
	f, err := openLogFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	f.Close()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file not created: %v", err)
	}

	// A regular file where the directory should be.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("writing blocker: %v", err)
	}
	_, err = openLogFile(filepath.Join(blocker, "sub", "ottomenu.log"))
	if err == nil {
		t.Fatal("expected an error when the log dir cannot be created")
	}
	if !strings.Contains(err.Error(), "creating log dir") {
		t.Fatalf("error should name the directory step, got %v", err)
	}
}
