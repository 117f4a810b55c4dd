package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// Golden compares rendered console output against testdata/<name>.golden.
// Run with TASKLIST_UPDATE_GOLDEN=1 to rewrite the file from got.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")

	if os.Getenv("TASKLIST_UPDATE_GOLDEN") != "" {
		if err := os.MkdirAll("testdata", 0o755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, got, 0o644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", goldenPath, err, got)
	}

	if !bytes.Equal(got, want) {
		// Quoted so trailing spaces and blank lines are visible.
		t.Errorf("output mismatch for %s\nWant: %q\nGot:  %q", name, want, got)
	}
}
