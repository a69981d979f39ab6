package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/bloom/internal/catalog"
	"github.com/five82/bloom/internal/storage"
)

// Config captures where Bloom keeps its catalog and logs.
type Config struct {
	StorageBackend   string
	DataDir          string
	StorageKey       string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	PlaceholderImage string
	LogPath          string
}

const (
	defaultConfigPath = "~/.config/bloom/config.toml"
	defaultDataDir    = "~/.local/share/bloom"
	defaultLogPath    = "~/.local/state/bloom/bloom.log"
	defaultRedisAddr  = "127.0.0.1:6379"
)

// Environment overrides, applied after the file.
const (
	EnvStorageBackend = "BLOOM_STORAGE_BACKEND"
	EnvDataDir        = "BLOOM_DATA_DIR"
	EnvStorageKey     = "BLOOM_STORAGE_KEY"
	EnvRedisAddr      = "BLOOM_REDIS_ADDR"
	EnvRedisPassword  = "BLOOM_REDIS_PASSWORD"
	EnvRedisDB        = "BLOOM_REDIS_DB"
	EnvLogPath        = "BLOOM_LOG_PATH"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		StorageBackend:   storage.BackendFile,
		DataDir:          mustExpand(defaultDataDir),
		StorageKey:       catalog.DefaultSlotKey,
		RedisAddr:        defaultRedisAddr,
		PlaceholderImage: catalog.DefaultPlaceholderImage,
		LogPath:          mustExpand(defaultLogPath),
	}
}

// Load locates and parses the Bloom config, falling back to defaults when
// missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer file.Close()

		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		var raw struct {
			StorageBackend   string `toml:"storage_backend"`
			DataDir          string `toml:"data_dir"`
			StorageKey       string `toml:"storage_key"`
			RedisAddr        string `toml:"redis_addr"`
			RedisPassword    string `toml:"redis_password"`
			RedisDB          int    `toml:"redis_db"`
			PlaceholderImage string `toml:"placeholder_image"`
			LogPath          string `toml:"log_path"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}

		setString(&cfg.StorageBackend, raw.StorageBackend)
		setString(&cfg.DataDir, raw.DataDir)
		setString(&cfg.StorageKey, raw.StorageKey)
		setString(&cfg.RedisAddr, raw.RedisAddr)
		setString(&cfg.RedisPassword, raw.RedisPassword)
		setString(&cfg.PlaceholderImage, raw.PlaceholderImage)
		setString(&cfg.LogPath, raw.LogPath)
		cfg.RedisDB = raw.RedisDB
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	cfg.StorageBackend = strings.ToLower(cfg.StorageBackend)
	cfg.DataDir = mustExpand(cfg.DataDir)
	cfg.LogPath = mustExpand(cfg.LogPath)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the app cannot start with.
func (c Config) Validate() error {
	switch c.StorageBackend {
	case storage.BackendFile, storage.BackendRedis, storage.BackendMemory:
	default:
		return fmt.Errorf("invalid storage_backend %q (want file, redis or memory)", c.StorageBackend)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("invalid redis_db %d", c.RedisDB)
	}
	return nil
}

// StorageOptions maps the config onto storage.Open.
func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:       c.StorageBackend,
		Dir:           c.DataDir,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
	}
}

func (c *Config) applyEnv() error {
	setString(&c.StorageBackend, os.Getenv(EnvStorageBackend))
	setString(&c.DataDir, os.Getenv(EnvDataDir))
	setString(&c.StorageKey, os.Getenv(EnvStorageKey))
	setString(&c.RedisAddr, os.Getenv(EnvRedisAddr))
	setString(&c.RedisPassword, os.Getenv(EnvRedisPassword))
	setString(&c.LogPath, os.Getenv(EnvLogPath))
	if raw := strings.TrimSpace(os.Getenv(EnvRedisDB)); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvRedisDB, err)
		}
		c.RedisDB = db
	}
	return nil
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
