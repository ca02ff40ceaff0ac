package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/podium/internal/draw"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// action identifies what a confirmed modal asks the model to do.
type action int

const (
	actionRemoveTopic action = iota
	actionRemoveSlot
	actionUndo
	actionReset
)

// confirmedMsg is sent when the user accepts a confirmation modal.
type confirmedMsg struct {
	action  action
	dayID   int
	topicID string
	slotIdx int
}

// confirmModal asks a yes/no question.
type confirmModal struct {
	title   string
	body    string
	danger  bool
	confirm confirmedMsg
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Confirm):
		done := c.confirm
		return c, func() tea.Msg { return done }, true
	case key.Matches(km, keys.Cancel):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	titleStyle := styles.AccentText.Bold(true)
	border := theme.BorderFocus
	if c.danger {
		titleStyle = styles.DangerText
		border = theme.Danger
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.body))
	b.WriteString("\n\n")
	b.WriteString(styles.WarningText.Render("enter/y"))
	b.WriteString(styles.MutedText.Render(" confirm   "))
	b.WriteString(styles.WarningText.Render("esc/n"))
	b.WriteString(styles.MutedText.Render(" cancel"))
	return placeModal(theme, border, width, height, 50, b.String())
}

// promptPurpose identifies what a submitted prompt is for.
type promptPurpose int

const (
	promptRenameSlot promptPurpose = iota
	promptSuggest
)

// promptSubmittedMsg carries the value of a submitted prompt.
type promptSubmittedMsg struct {
	purpose promptPurpose
	dayID   int
	slotID  int
	value   string
}

// promptModal reads a single line of text.
type promptModal struct {
	title  string
	input  textinput.Model
	submit promptSubmittedMsg
}

func newPromptModal(title, value, placeholder string, submit promptSubmittedMsg) promptModal {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 40
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return promptModal{title: title, input: ti, submit: submit}
}

func (p promptModal) Update(msg tea.Msg, _ keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			value := strings.TrimSpace(p.input.Value())
			if value == "" {
				return p, nil, false
			}
			out := p.submit
			out.value = value
			return p, func() tea.Msg { return out }, true
		case "esc":
			return p, nil, true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(p.title))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter save · esc cancel"))
	return placeModal(theme, theme.BorderFocus, width, height, 50, b.String())
}

// topicEditedMsg carries the fields saved from the topic editor.
type topicEditedMsg struct {
	dayID   int
	topicID string
	fields  draw.TopicFields
}

// editorModal edits the three fields of one topic. Tab cycles the fields.
type editorModal struct {
	dayID   int
	topicID string
	inputs  [3]textinput.Model
	focus   int
}

var editorLabels = [3]string{"Title", "Side A (pro)", "Side B (con)"}

func newEditorModal(dayID int, t draw.Topic) editorModal {
	values := [3]string{t.Title, t.SideA, t.SideB}
	e := editorModal{dayID: dayID, topicID: t.ID}
	for i := range e.inputs {
		ti := textinput.New()
		ti.Placeholder = editorLabels[i]
		ti.CharLimit = 300
		ti.Width = 56
		ti.SetValue(values[i])
		ti.CursorEnd()
		e.inputs[i] = ti
	}
	e.inputs[0].Focus()
	return e
}

func (e editorModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case km.String() == "enter":
			out := topicEditedMsg{
				dayID:   e.dayID,
				topicID: e.topicID,
				fields: draw.TopicFields{
					Title: strings.TrimSpace(e.inputs[0].Value()),
					SideA: strings.TrimSpace(e.inputs[1].Value()),
					SideB: strings.TrimSpace(e.inputs[2].Value()),
				},
			}
			return e, func() tea.Msg { return out }, true
		case km.String() == "esc":
			return e, nil, true
		case key.Matches(km, keys.NextField):
			e.setFocus((e.focus + 1) % len(e.inputs))
			return e, nil, false
		case key.Matches(km, keys.PrevField):
			e.setFocus((e.focus + len(e.inputs) - 1) % len(e.inputs))
			return e, nil, false
		}
	}
	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return e, cmd, false
}

func (e *editorModal) setFocus(i int) {
	e.inputs[e.focus].Blur()
	e.focus = i
	e.inputs[e.focus].Focus()
}

func (e editorModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	labelStyles := [3]lipgloss.Style{styles.AccentText, styles.SideAText, styles.SideBText}
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Edit topic"))
	b.WriteString("\n")
	for i := range e.inputs {
		b.WriteString("\n")
		b.WriteString(labelStyles[i].Render(editorLabels[i]))
		b.WriteString("\n")
		b.WriteString(e.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("tab next field · enter save · esc close"))
	return placeModal(theme, theme.BorderFocus, width, height, 64, b.String())
}

// placeModal centers a bordered box on the screen.
func placeModal(theme Theme, border string, width, height, boxWidth int, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Width(boxWidth).
		Render(content)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
