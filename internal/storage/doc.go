// Package storage provides the durable key-value slots Bloom persists into.
//
// # Backends
//
//   - FileKV: one JSON file per key under the data directory (default)
//   - RedisKV: Redis strings under a "bloom:" prefix
//   - MemoryKV: process-local map, used by tests and the "memory" backend
//
// All backends report a missing key with ErrNotFound so callers can tell an
// empty slot from a broken one:
//
//	data, err := kv.Get(ctx, "bouquet-storage")
//	if errors.Is(err, storage.ErrNotFound) {
//		// first run
//	}
//
// Keys are slot names, not paths. FileKV rejects keys containing path
// separators.
package storage
