// Package app provides the orchestration layer for podium.
//
// # Overview
//
// This package wires together configuration, logging, storage, the state
// store and the UI. It serves as the composition root where all
// dependencies are initialized and connected.
//
// # Startup
//
//  1. Load config from ~/.config/podium/config.toml (defaults when missing)
//  2. Build the zap logger writing to the configured log file
//  3. Open the storage backend, falling back to memory when it cannot be opened
//  4. Load and normalize the saved snapshot
//  5. Create the state.Store and subscribe a persist.Writer to it
//  6. Pick the suggestion generator (Gemini when an API key is set)
//  7. Start the persister goroutine and run the TUI until the user quits
//
// Open performs steps 1 to 6 and returns a Session. The headless commands
// (draw, export, import) use a Session without starting the TUI.
//
// # Persistence
//
// Every committed change queues a snapshot on the writer. The persister
// goroutine flushes it in the background. Failed writes are logged and
// retried with exponential backoff capped at 30 seconds; memory state is
// never rolled back. Session.Close stops the persister and performs a final
// flush.
//
// # Error Handling
//
// Fatal errors (returned from Open or Run):
//   - Configuration file invalid
//   - Log file cannot be created
//
// Recoverable errors (logged, the session continues):
//   - Storage backend cannot be opened
//   - Saved snapshot missing, unreadable or corrupt
//   - Snapshot write failures
//   - Suggestion client initialization failure
package app
