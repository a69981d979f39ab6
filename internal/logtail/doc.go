// Package logtail reads the tail of Bloom's app log for the activity view.
//
// # Overview
//
// The TUI owns the terminal, so the app redirects the standard logger to a
// file. Load warnings, save failures and dropped duplicates end up there.
// The activity view reads the last few hundred lines back with Read and
// turns them into Entry values with ParseAll.
//
// # Reading
//
// Read keeps a ring buffer of maxLines strings and scans the file once, so
// memory stays proportional to the window rather than the file. A missing
// file yields nil, nil.
//
// # Parsing
//
// Lines are expected in the standard logger's default format:
//
//	2026/10/19 09:15:02 catalog: save failed, changes kept in memory only: ...
//
// Parse pulls out the timestamp, the lowercase component prefix and the
// message. Severity is inferred from the message wording ("failed" is an
// error, "dropping" a warning) since the standard logger has no levels.
// Lines that don't match come back with only Message and Raw set.
package logtail
