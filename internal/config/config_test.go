package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNewDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.Backend != BackendJSON {
		t.Errorf("expected backend %q, got %q", BackendJSON, cfg.Backend)
	}
	if cfg.DataPath() != filepath.Join(dir, "tasks.json") {
		t.Errorf("unexpected data path %q", cfg.DataPath())
	}
	if cfg.LogPath() != filepath.Join(dir, "tasklist.log") {
		t.Errorf("unexpected log path %q", cfg.LogPath())
	}
	if !cfg.Color {
		t.Error("expected color enabled by default")
	}
	if !reflect.DeepEqual(cfg.SeedTasks, DefaultSeedTasks) {
		t.Errorf("expected default seed tasks, got %v", cfg.SeedTasks)
	}
}

func TestNewParsesYaml(t *testing.T) {
	dir := t.TempDir()
	configYAML := strings.TrimSpace(`
backend: sqlite
data_file: /var/tmp/my-tasks.db
log_file: logs/run.log
color: false
seed_tasks: []
`)
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.Backend)
	}
	if cfg.DataPath() != "/var/tmp/my-tasks.db" {
		t.Errorf("expected absolute data path kept, got %q", cfg.DataPath())
	}
	if cfg.LogPath() != filepath.Join(dir, "logs", "run.log") {
		t.Errorf("expected log path resolved against dir, got %q", cfg.LogPath())
	}
	if cfg.Color {
		t.Error("expected color disabled")
	}
	if len(cfg.SeedTasks) != 0 {
		t.Errorf("expected seeding disabled, got %v", cfg.SeedTasks)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("backend: postgres\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(dir); err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
}

func TestNewRejectsMalformedYaml(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("backend: [json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefaultConfigDirUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("expected XDG path, got %q", got)
	}
}
