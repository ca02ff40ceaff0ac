// Package state owns podium's application hierarchy.
//
// # Overview
//
// Store is the single container for the Day → Slot → Topic data. The UI and
// the headless CLI commands both mutate it through the Store's operations;
// persistence listens through Subscribe.
//
//	UI / CLI                     Store                       Observers
//	┌──────────────┐            ┌────────────────────┐      ┌──────────────┐
//	│ AddTopic()   │───────────→│ clone current data │      │              │
//	│ Draw()       │   (mutex)  │ apply transition   │      │ persist      │
//	│ Undo() ...   │            │ install on success │─────→│ Writer       │
//	└──────────────┘            └────────────────────┘      └──────────────┘
//	       ↑                              │
//	       └──────── Snapshot() ←─────────┘
//
// # Update Semantics
//
// Every operation follows the same steps under the write lock:
//
//  1. Deep-copy the current hierarchy
//  2. Run a draw package transition against the copy
//  3. On success, replace the current hierarchy, bump Version
//  4. After releasing the lock, call observers with a fresh Snapshot
//
// A rejected transition (no topics available, last slot, unknown day) leaves
// the current data and Version untouched and calls no observer. Readers never
// see a partial update.
//
// # Addressing
//
// Topic and draw operations target the active slot of the given day, the
// same slot the UI is showing. Slot operations take a day id plus an index
// (SetActiveSlot, RemoveSlot) or a slot id (RenameSlot, Reveal).
//
// # Reveal Guard
//
// Draw commits its pick immediately and then marks the slot as pending. The
// UI plays its shuffle animation and calls Reveal once the result is on
// screen. While a slot is pending, Draw, Undo and Reset on it return
// ErrDrawPending, so rapid repeated input cannot mark two topics. The
// pending mark is not persisted.
//
// # Randomness
//
// Draw uses the process-wide math/rand/v2 generator unless WithSource
// supplies another draw.Source (the CLI's --seed flag, tests).
//
// # Observers
//
// Observers run synchronously on the mutating goroutine and must not call
// back into the Store. The persistence Writer only hands the snapshot to its
// own goroutine.
package state
