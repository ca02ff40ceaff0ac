package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Days and slots",
			items: []helpItem{
				{"1-9", "Select day"},
				{"←/→", "Previous/next day"},
				{"[/]", "Previous/next slot"},
				{"n", "New slot"},
				{"r", "Rename slot"},
				{"X", "Remove slot"},
			},
		},
		{
			title: "Manage",
			items: []helpItem{
				{"j/k", "Move up/down"},
				{"a", "Add topic"},
				{"enter", "Edit topic"},
				{"x", "Delete topic"},
				{"v", "Show/hide topics"},
				{"S", "Suggest topics"},
			},
		},
		{
			title: "Draw",
			items: []helpItem{
				{"Space", "Draw a topic"},
				{"u", "Undo last draw"},
				{"R", "Reset slot"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"tab/m/d", "Switch view"},
				{"L", "Application log"},
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return placeModal(m.theme, m.theme.Accent, m.width, m.height, 40, b.String())
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
