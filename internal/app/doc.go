// Package app provides the orchestration layer for the Bloom application.
//
// # Overview
//
// This package is the composition root: it loads configuration, opens the
// storage backend, builds the catalog store and hands it to either the TUI or
// one of the command line writers.
//
// # Startup
//
//  1. Load KEY=value pairs from an env file (./.env unless -env is given)
//  2. Load ~/.config/bloom/config.toml and apply BLOOM_* overrides
//  3. Point the standard logger at the log file via tea.LogToFile
//  4. Open the storage backend, retrying Redis with capped backoff
//  5. Build catalog.Store over a JSON persister and load the last save
//  6. Run the TUI (Run) or write a snapshot (Export, Stats)
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> loadEnvFile()      godotenv
//	       ├─────> config.Load()      TOML + env
//	       ├─────> tea.LogToFile()    log file
//	       ├─────> openStorage()      file, redis or memory
//	       ├─────> catalog.NewStore() load + background writer
//	       └─────> ui.Run()           TUI (blocks)
//
// # Shutdown
//
// Closing a session closes the store first, which waits for the background
// writer to save the latest snapshot, then the storage backend, then the log
// file. A cancelled context (SIGINT, SIGTERM) ends the TUI without an error.
//
// # Error Handling
//
// Fatal (returned):
//   - Unreadable or invalid config
//   - An explicit env file that cannot be read
//   - Storage that cannot be opened after all attempts
//
// Logged and tolerated:
//   - A corrupt or missing saved collection (the store starts empty)
//   - Failed background saves (changes stay in memory)
//   - Failed Redis attempts that are retried
package app
