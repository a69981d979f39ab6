// Package ui provides the terminal user interface for Bloom.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model is the root tea.Model; it holds a
// pointer to the catalog.Store and a copy of its latest snapshot. Every
// mutation goes through the store, and the model re-reads the snapshot
// afterwards, so what is drawn always matches what will be persisted.
//
// # Package Structure
//
//   - app.go: Model, Options, Init/Update/View, messages, commands and Run
//   - keys.go: key bindings (bubbles/key)
//   - theme.go: the light and dark palettes and their lipgloss styles
//   - list.go: the bouquet list, selection tracking and the boxed layout
//   - search.go: the "/" name filter
//   - form.go: the add/edit dialog backed by internal/form
//   - confirm.go: the delete confirmation dialog
//   - detail.go, stats.go, activity.go: the secondary screens
//   - header.go, help.go: chrome and the help overlay
//
// # Screens
//
//   - List: every bouquet in insertion order, filtered by the search query
//   - Detail: all fields of the selected bouquet
//   - Stats: counts, purchase progress and the top five categories
//   - Activity: the tail of the app log, parsed by internal/logtail
//
// # Event Flow
//
//  1. New subscribes to the store and takes an initial snapshot
//  2. Init starts waitForChange, a command that blocks on the subscription
//  3. A key press mutates the store (or opens a modal that later does)
//  4. The store notifies subscribers; storeChangedMsg triggers a re-read and
//     re-arms waitForChange
//  5. The selection follows the bouquet id across re-reads
//
// Modals never touch the store. They close by returning a command whose
// message (formSubmittedMsg, deleteConfirmedMsg) the root model applies.
//
// # Flash Messages
//
// Add, save, delete and purchase toggles show a short confirmation on the
// status line. Each flash carries a sequence number so an older expiry tick
// cannot clear a newer message.
//
// # Dark Mode
//
// T flips between the light and dark themes and saves the choice through
// internal/prefs. The flag is independent of the catalog.
package ui
