// Package catalog owns the bouquet collection and the views derived from it.
//
// # Overview
//
// Store is the single source of truth for bouquet records. The UI calls its
// mutation methods and reads Snapshot; nothing else writes the collection or
// the persisted copy.
//
//	UI goroutine:                    Writer goroutine:
//	┌──────────────────┐            ┌──────────────────┐
//	│ store.Create()   │            │                  │
//	│   mutate memory  │            │                  │
//	│   queuePersist() │───────────→│ persister.Save() │
//	│   notify()       │  (chan 1)  │                  │
//	│ store.Snapshot() │            │                  │
//	└──────────────────┘            └──────────────────┘
//
// # Update Semantics
//
//   - Create mints a UUID, defaults IsSold to false and fills in the
//     placeholder image, then appends.
//   - Update merges a Patch field by field; ID and IsSold never change.
//   - Delete and TogglePurchased act in place.
//   - Unknown ids are ignored: no error, no write, no notification.
//
// Memory is updated before the write is queued, so a caller always reads its
// own writes. The write itself is fire-and-forget. If the writer is still busy,
// a newer snapshot replaces the queued one; only the latest state matters.
// Save failures are logged and otherwise dropped, so the in-memory collection
// stays correct for the life of the process but may be lost on restart.
//
// # Persistence
//
// Persister abstracts the medium. JSONPersister writes the whole collection as
// a JSON array into one storage.KV slot (default key "bouquet-storage"). On
// startup a missing slot, or one that fails to decode, yields an empty
// collection.
//
// # Notification
//
// Subscribe hands out a buffered channel per subscriber. Sends never block, so
// bursts of mutations collapse into a single pending signal. Subscribers re-read
// Snapshot when woken.
//
// # Derived Views
//
// FilterByName and ComputeStatistics are pure functions over a snapshot. They
// are recomputed on demand and never touch the store. Records without a
// category are counted under UncategorizedLabel.
package catalog
