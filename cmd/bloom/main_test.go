package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"BLOOM_STORAGE_BACKEND", "BLOOM_DATA_DIR", "BLOOM_STORAGE_KEY", "BLOOM_LOG_PATH", "BLOOM_REDIS_DB"} {
		t.Setenv(key, "")
	}
	root := t.TempDir()
	path := filepath.Join(root, "config.toml")
	body := "storage_backend = \"memory\"\nlog_path = \"" + filepath.Join(root, "bloom.log") + "\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunExportEmpty(t *testing.T) {
	cfg := writeConfig(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-config", cfg, "export"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "[]" {
		t.Fatalf("stdout = %q, want []", got)
	}
}

func TestRunStatsYAML(t *testing.T) {
	cfg := writeConfig(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-config", cfg, "stats", "-format", "yaml"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "total: 0") {
		t.Fatalf("stdout = %q, want total: 0", stdout.String())
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"bake"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), `unknown command "bake"`) {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	cfg := writeConfig(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", cfg, "export", "-format", "xml"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}
