// Package ui is the podium terminal interface, built on Bubble Tea.
//
// The Model holds the current day and view plus a copy of the latest store
// snapshot. Every mutation goes through state.Store and the model refreshes
// its snapshot afterwards, so the UI never edits topic data directly.
//
// Two views share the header, slot bar and command bar:
//
//   - Manage: add, edit and delete topics, rename and add slots, and request
//     suggestions. The topic list can be hidden so it is not projected.
//   - Draw: draw one topic, play a short shuffle over the remaining titles,
//     then reveal the result card rendered with glamour.
//
// The draw is committed before the shuffle starts. The shuffle only picks
// titles to flash on screen and cannot change the outcome. While it runs the
// slot is marked pending in the store and further draws, undo and reset are
// refused.
//
// Modals (confirmations, prompts and the topic editor) implement Modal and
// report their result as a message that Model.Update handles.
package ui
