// Package config loads Bloom's TOML configuration.
//
// # Overview
//
// The config decides where the bouquet catalog lives (a JSON file slot, a
// Redis key or process memory), which slot key holds it, the placeholder
// image for bouquets added without one, and where the app log goes.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/bloom/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. Empty or missing fields keep their defaults
//  5. BLOOM_* environment variables override whatever the file said
//
// # Default Values
//
//   - Config file: ~/.config/bloom/config.toml
//   - Storage backend: file
//   - Data directory: ~/.local/share/bloom
//   - Slot key: bouquet-storage
//   - Redis address: 127.0.0.1:6379
//   - Log file: ~/.local/state/bloom/bloom.log
//
// # TOML Format
//
//	storage_backend = "redis"   # file, redis or memory
//	data_dir = "~/.local/share/bloom"
//	storage_key = "bouquet-storage"
//	redis_addr = "127.0.0.1:6379"
//	redis_password = ""
//	redis_db = 0
//	placeholder_image = "https://..."
//	log_path = "~/.local/state/bloom/bloom.log"
//
// # Environment
//
// BLOOM_STORAGE_BACKEND, BLOOM_DATA_DIR, BLOOM_STORAGE_KEY, BLOOM_REDIS_ADDR,
// BLOOM_REDIS_PASSWORD, BLOOM_REDIS_DB and BLOOM_LOG_PATH take precedence over
// the file. The app loads a .env file into the environment before calling
// Load, so the same variables can live there.
//
// # Path Expansion
//
// Paths starting with ~ are expanded to the home directory and every path is
// made absolute.
package config
