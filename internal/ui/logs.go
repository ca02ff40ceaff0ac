package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/podium/internal/logtail"
)

// logTailMsg carries the tail of the application log.
type logTailMsg struct {
	lines []string
	err   error
}

func (m Model) readLogsCmd() tea.Cmd {
	path := m.config.Log.Path
	return func() tea.Msg {
		if path == "" {
			return logTailMsg{}
		}
		lines, err := logtail.Read(path, LogTailLines)
		return logTailMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogTail(msg logTailMsg) {
	if msg.err != nil {
		m.logView.SetContent(m.theme.Styles().DangerText.Render("read log: " + msg.err.Error()))
		return
	}
	if len(msg.lines) == 0 {
		m.logView.SetContent(m.theme.Styles().FaintText.Render("Log is empty."))
		return
	}
	m.logView.SetContent(m.formatLogLines(msg.lines))
	m.logView.GotoBottom()
}

func (m Model) formatLogLines(lines []string) string {
	styles := m.theme.Styles()
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		e := logtail.Parse(line)
		if e.Level == "" {
			out = append(out, styles.Text.Render(e.Raw))
			continue
		}
		var b strings.Builder
		b.WriteString(styles.FaintText.Render(e.ShortTime()))
		b.WriteString(" ")
		b.WriteString(styles.LevelStyle(e.Level).Render(fmt.Sprintf("%-5s", strings.ToUpper(e.Level))))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(e.Message))
		if fields := e.FieldString(); fields != "" {
			b.WriteString(" ")
			b.WriteString(styles.MutedText.Render(fields))
		}
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Quit):
		m.showLogs = false
		return m, nil
	case msg.String() == "r":
		return m, m.readLogsCmd()
	case msg.String() == "g":
		m.logView.GotoTop()
		return m, nil
	case msg.String() == "G":
		m.logView.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

// resizeLogView fits the viewport inside the log box.
func (m *Model) resizeLogView() {
	w := max(m.width-4, 10)
	h := max(m.height-3, 3)
	if m.logView.Width == 0 {
		m.logView = viewport.New(w, h)
	}
	m.logView.Width = w
	m.logView.Height = h
	m.logView.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
}

// renderLogs renders the log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)
	box := m.renderBox("Application Log", m.logView.View(), m.width, m.height-1)
	status := bg.Render(fmt.Sprintf("%s  %3.f%%", m.config.Log.Path, m.logView.ScrollPercent()*100), styles.FaintText) +
		bg.Spaces(2) +
		bg.Render("r", styles.AccentText) + bg.Sep(":") + bg.Render("Reload", styles.MutedText) +
		bg.Spaces(2) +
		bg.Render("esc", styles.AccentText) + bg.Sep(":") + bg.Render("Close", styles.MutedText)
	return box + "\n" + status
}
