// Package draw holds podium's data model and the transitions over it.
//
// # Hierarchy
//
//	AppData (day id → Day)
//	  └─ Day: ordered Slots + index of the active slot
//	       └─ Slot: ordered Topics (newest first) + LastDrawnID
//	            └─ Topic: title, two sides, used flag
//
// The set of days is fixed by configuration. A day always holds at least one
// slot and its active index always points at one of them.
//
// # Draw Engine
//
// Pick is a pure function: one RNG call, uniform over the topics it is given.
// Slot.Draw feeds it the currently available topics, then marks the pick used
// and records it as the single undo target. Undo reverts exactly that draw and
// Reset returns every topic to the pool.
//
//	Draw   : available ≠ ∅ → pick used, LastDrawnID = pick
//	Undo   : LastDrawnID live → topic unused, LastDrawnID = ""
//	Reset  : all unused, LastDrawnID = ""
//
// # Stale Pointers
//
// Deleting a topic clears LastDrawnID when it matches. Reads still go through
// Slot.LastDrawn, which treats a pointer to a missing or unused topic as "no
// last draw", so snapshots written by other tools cannot break lookups.
// AppData.Normalize applies the same repair to loaded data.
//
// Nothing in this package does I/O or holds locks. Callers that need
// snapshot semantics clone first (see internal/state).
package draw
