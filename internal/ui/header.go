package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the logo and the day selector.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("podium", styles.Logo)}
	for i, d := range m.config.Days {
		label := fmt.Sprintf("%d %s", i+1, d.Label)
		if i == m.dayIdx {
			parts = append(parts, styles.ActiveTab.Render(label))
			continue
		}
		parts = append(parts, styles.Tab.Render(label))
	}

	view := "Manage"
	if m.view == ViewDraw {
		view = "Draw"
	}
	parts = append(parts, bg.Render(view, styles.AccentText.Bold(true)))

	return styles.Header.Width(m.width).Render(strings.Join(parts, bg.Spaces(1)))
}

// renderSlotBar lists the slots of the current day with their usage.
func (m Model) renderSlotBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	day := m.day()

	parts := []string{bg.Render("Slots", styles.MutedText)}
	for i, s := range day.Slots {
		label := fmt.Sprintf("%s %d/%d", truncate(s.Name, 24), s.UsedCount(), len(s.Topics))
		if i == day.ActiveSlot {
			parts = append(parts, styles.ActiveTab.Render(label))
			continue
		}
		parts = append(parts, styles.Tab.Render(label))
	}
	return styles.Background.Padding(0, 1).Width(m.width).Render(strings.Join(parts, bg.Space()))
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.view {
	case ViewDraw:
		commands = []cmd{
			{"Space", "Draw"},
			{"u", "Undo"},
			{"R", "Reset"},
			{"[/]", "Slot"},
			{"m", "Manage"},
			{"?", "More"},
		}
	default:
		showLabel := "Show"
		if m.showTopics {
			showLabel = "Hide"
		}
		commands = []cmd{
			{"a", "Add"},
			{"enter", "Edit"},
			{"x", "Delete"},
			{"v", showLabel},
			{"S", "Suggest"},
			{"[/]", "Slot"},
			{"n", "New slot"},
			{"d", "Draw"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderStatus renders the one-line status message below the content.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	var b strings.Builder
	if m.suggesting {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	switch {
	case m.status == "":
	case m.statusErr:
		b.WriteString(styles.DangerText.Render(m.status))
	default:
		b.WriteString(styles.MutedText.Render(m.status))
	}
	return b.String()
}

// contentHeight is the height left for the main box.
func (m Model) contentHeight() int {
	return max(m.height-chromeLines, 5)
}
