// Package persist stores the topic hierarchy between sessions.
//
// The whole hierarchy is written as one JSON document under SnapshotKey,
// so the document can be copied between backends unchanged.
//
// Three backends implement Backend: SQLite (the default, pure Go driver),
// a directory of JSON files, and process memory. Load never fails; a
// missing or unreadable snapshot starts from the default hierarchy.
//
// Writer subscribes to the state store. It coalesces bursts so only the
// newest snapshot reaches the backend, and signals Ready so a background
// loop can call Flush. A failed write is logged and retried on the next
// Flush; the in-memory state is never rolled back.
package persist
