package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/bloom/internal/catalog"
	"github.com/five82/bloom/internal/storage"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvStorageBackend, EnvDataDir, EnvStorageKey, EnvRedisAddr, EnvRedisPassword, EnvRedisDB, EnvLogPath} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.StorageBackend != storage.BackendFile {
		t.Fatalf("StorageBackend = %q, want %q", cfg.StorageBackend, storage.BackendFile)
	}
	if cfg.StorageKey != catalog.DefaultSlotKey {
		t.Fatalf("StorageKey = %q, want %q", cfg.StorageKey, catalog.DefaultSlotKey)
	}
	if cfg.PlaceholderImage != catalog.DefaultPlaceholderImage {
		t.Fatalf("PlaceholderImage = %q, want %q", cfg.PlaceholderImage, catalog.DefaultPlaceholderImage)
	}

	wantDataDir, err := ExpandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("ExpandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if !strings.HasPrefix(cfg.LogPath, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", cfg.LogPath, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := writeConfig(t, `
storage_backend = "  Redis "
data_dir = "  ~/bouquets  "
storage_key = "wishlist"
redis_addr = "10.0.0.5:6380"
redis_password = "secret"
redis_db = 3
placeholder_image = "https://example.test/p.png"
log_path = "~/bloom.log"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.StorageBackend != storage.BackendRedis {
		t.Fatalf("StorageBackend = %q, want %q", cfg.StorageBackend, storage.BackendRedis)
	}
	if cfg.DataDir != filepath.Join(home, "bouquets") {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, filepath.Join(home, "bouquets"))
	}
	if cfg.StorageKey != "wishlist" {
		t.Fatalf("StorageKey = %q, want %q", cfg.StorageKey, "wishlist")
	}
	if cfg.RedisAddr != "10.0.0.5:6380" || cfg.RedisPassword != "secret" || cfg.RedisDB != 3 {
		t.Fatalf("redis settings = %q/%q/%d, want 10.0.0.5:6380/secret/3", cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	if cfg.PlaceholderImage != "https://example.test/p.png" {
		t.Fatalf("PlaceholderImage = %q", cfg.PlaceholderImage)
	}
	if cfg.LogPath != filepath.Join(home, "bloom.log") {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath, filepath.Join(home, "bloom.log"))
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := writeConfig(t, `
storage_backend = "   "
storage_key = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.StorageBackend != storage.BackendFile {
		t.Fatalf("StorageBackend = %q, want %q", cfg.StorageBackend, storage.BackendFile)
	}
	if cfg.StorageKey != catalog.DefaultSlotKey {
		t.Fatalf("StorageKey = %q, want %q", cfg.StorageKey, catalog.DefaultSlotKey)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := writeConfig(t, `
storage_backend = "file"
redis_db = 1
`)
	t.Setenv(EnvStorageBackend, "memory")
	t.Setenv(EnvRedisDB, "7")
	t.Setenv(EnvDataDir, "~/elsewhere")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.StorageBackend != storage.BackendMemory {
		t.Fatalf("StorageBackend = %q, want %q", cfg.StorageBackend, storage.BackendMemory)
	}
	if cfg.RedisDB != 7 {
		t.Fatalf("RedisDB = %d, want 7", cfg.RedisDB)
	}
	if cfg.DataDir != filepath.Join(home, "elsewhere") {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, filepath.Join(home, "elsewhere"))
	}
}

func TestLoad_BadRedisDBEnvFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)
	t.Setenv(EnvRedisDB, "three")

	_, err := Load(writeConfig(t, ""))
	if err == nil || !strings.Contains(err.Error(), EnvRedisDB) {
		t.Fatalf("Load error = %v, want it to mention %s", err, EnvRedisDB)
	}
}

func TestLoad_UnknownBackendFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	_, err := Load(writeConfig(t, `storage_backend = "postgres"`))
	if err == nil {
		t.Fatalf("Load returned nil error, want invalid backend")
	}
	if !strings.Contains(err.Error(), "storage_backend") {
		t.Fatalf("Load error = %q, want it to mention storage_backend", err.Error())
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, `storage_backend = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestStorageOptions(t *testing.T) {
	cfg := Config{StorageBackend: "redis", DataDir: "/data", RedisAddr: "h:1", RedisPassword: "p", RedisDB: 2}
	got := cfg.StorageOptions()
	want := storage.Options{Backend: "redis", Dir: "/data", RedisAddr: "h:1", RedisPassword: "p", RedisDB: 2}
	if got != want {
		t.Fatalf("StorageOptions = %+v, want %+v", got, want)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}
