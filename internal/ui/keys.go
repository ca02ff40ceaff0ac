package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	Escape     key.Binding
	Logs       key.Binding

	// View switching
	ViewManage key.Binding
	ViewDraw   key.Binding

	// Days and slots
	Day        key.Binding
	PrevDay    key.Binding
	NextDay    key.Binding
	PrevSlot   key.Binding
	NextSlot   key.Binding
	AddSlot    key.Binding
	DropSlot   key.Binding
	RenameSlot key.Binding

	// Manage actions
	Up          key.Binding
	Down        key.Binding
	AddTopic    key.Binding
	EditTopic   key.Binding
	DeleteTopic key.Binding
	Privacy     key.Binding
	Suggest     key.Binding

	// Draw actions
	Draw  key.Binding
	Undo  key.Binding
	Reset key.Binding

	// Modals
	Confirm   key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Switch view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Application log"),
		),

		ViewManage: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Manage topics"),
		),
		ViewDraw: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Draw room"),
		),

		Day: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Select day"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Next day"),
		),
		PrevSlot: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous slot"),
		),
		NextSlot: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next slot"),
		),
		AddSlot: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New slot"),
		),
		DropSlot: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Remove slot"),
		),
		RenameSlot: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rename slot"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		AddTopic: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add topic"),
		),
		EditTopic: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit topic"),
		),
		DeleteTopic: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete topic"),
		),
		Privacy: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Show/hide topics"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Suggest topics"),
		),

		Draw: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Draw"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Undo last draw"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reset slot"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter/y", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("esc/n", "Cancel"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewManage, k.ViewDraw, k.Day, k.PrevDay, k.NextDay},
		{k.PrevSlot, k.NextSlot, k.AddSlot, k.DropSlot, k.RenameSlot},
		{k.Up, k.Down, k.AddTopic, k.EditTopic, k.DeleteTopic, k.Privacy, k.Suggest},
		{k.Draw, k.Undo, k.Reset},
		{k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}
