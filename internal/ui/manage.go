package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/podium/internal/draw"
	"github.com/five82/podium/internal/state"
	"github.com/five82/podium/internal/suggest"
)

// suggestionsMsg carries generator output for a day.
type suggestionsMsg struct {
	dayID int
	items []suggest.Suggestion
}

func suggestCmd(ctx context.Context, gen suggest.Generator, dayID int, category string) tea.Cmd {
	return func() tea.Msg {
		return suggestionsMsg{dayID: dayID, items: gen.Suggest(ctx, category)}
	}
}

// handleManageKey processes keyboard input for the manage view.
func (m Model) handleManageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	slot := m.activeSlot()
	count := len(slot.Topics)

	switch {
	case key.Matches(msg, keys.Privacy):
		m.showTopics = !m.showTopics
		return m, nil

	case key.Matches(msg, keys.AddTopic):
		t, err := m.store.AddTopic(m.dayID(), draw.TopicFields{})
		if err != nil {
			m.setError("Could not add topic", err)
			return m, nil
		}
		m.refresh()
		m.cursor = 0
		m.modal = newEditorModal(m.dayID(), t)
		return m, nil

	case key.Matches(msg, keys.Suggest):
		if m.suggesting {
			return m, nil
		}
		m.modal = newPromptModal("Suggest topics about", m.config.Suggest.Category, "Category",
			promptSubmittedMsg{purpose: promptSuggest, dayID: m.dayID()})
		return m, nil
	}

	if count == 0 {
		return m, nil
	}
	if !m.showTopics {
		if key.Matches(msg, keys.Up, keys.Down, keys.EditTopic, keys.DeleteTopic) {
			m.setStatus("Topics are hidden. Press v to show them.")
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < count-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.EditTopic):
		m.modal = newEditorModal(m.dayID(), slot.Topics[m.cursor])
	case key.Matches(msg, keys.DeleteTopic):
		t := slot.Topics[m.cursor]
		m.modal = confirmModal{
			title:   "Delete topic",
			body:    fmt.Sprintf("Delete %q? This cannot be undone.", displayTitle(t.Title)),
			danger:  true,
			confirm: confirmedMsg{action: actionRemoveTopic, dayID: m.dayID(), topicID: t.ID},
		}
	}
	return m, nil
}

func (m *Model) stepSlot(delta int) {
	day := m.day()
	n := len(day.Slots)
	if n <= 1 {
		return
	}
	idx := ((day.ActiveSlot+delta)%n + n) % n
	if err := m.store.SetActiveSlot(m.dayID(), idx); err != nil {
		m.setError("Could not switch slot", err)
		return
	}
	m.cursor = 0
	m.refresh()
}

func (m *Model) addSlot() {
	slot, err := m.store.AddSlot(m.dayID())
	if err != nil {
		m.setError("Could not add slot", err)
		return
	}
	m.cursor = 0
	m.refresh()
	m.setStatus("Added " + slot.Name)
}

func (m *Model) confirmRemoveSlot() {
	day := m.day()
	if len(day.Slots) <= 1 {
		m.setError("A day needs at least one slot", nil)
		return
	}
	slot := day.Active()
	m.modal = confirmModal{
		title:   "Remove slot",
		body:    fmt.Sprintf("Remove %s and its %d topics?", slot.Name, len(slot.Topics)),
		danger:  true,
		confirm: confirmedMsg{action: actionRemoveSlot, dayID: m.dayID(), slotIdx: day.ActiveSlot},
	}
}

// handleConfirmed runs the action of an accepted confirmation modal.
func (m Model) handleConfirmed(msg confirmedMsg) (tea.Model, tea.Cmd) {
	switch msg.action {
	case actionRemoveTopic:
		if err := m.store.RemoveTopic(msg.dayID, msg.topicID); err != nil {
			m.setError("Could not delete topic", err)
			break
		}
		m.setStatus("Topic deleted")

	case actionRemoveSlot:
		removed, err := m.store.RemoveSlot(msg.dayID, msg.slotIdx)
		if err != nil {
			m.setError("Could not remove slot", err)
			break
		}
		m.cursor = 0
		m.setStatus("Removed " + removed.Name)

	case actionUndo:
		t, ok, err := m.store.Undo(msg.dayID)
		switch {
		case errors.Is(err, state.ErrDrawPending):
			m.setError("Wait for the draw to finish", nil)
		case err != nil:
			m.setError("Could not undo", err)
		case !ok:
			m.setStatus("Nothing to undo")
		default:
			m.logger.Info("draw undone", zap.Int("day", msg.dayID), zap.String("topic", t.ID))
			m.setStatus(fmt.Sprintf("Returned %q to the pool", displayTitle(t.Title)))
		}

	case actionReset:
		if err := m.store.Reset(msg.dayID); err != nil {
			if errors.Is(err, state.ErrDrawPending) {
				m.setError("Wait for the draw to finish", nil)
				break
			}
			m.setError("Could not reset slot", err)
			break
		}
		m.logger.Info("slot reset", zap.Int("day", msg.dayID))
		m.setStatus("All topics are back in the pool")
	}
	m.refresh()
	return m, nil
}

// handlePrompt applies a submitted single-line prompt.
func (m Model) handlePrompt(msg promptSubmittedMsg) (tea.Model, tea.Cmd) {
	switch msg.purpose {
	case promptRenameSlot:
		if err := m.store.RenameSlot(msg.dayID, msg.slotID, msg.value); err != nil {
			m.setError("Could not rename slot", err)
			return m, nil
		}
		m.refresh()
		m.setStatus("Slot renamed to " + msg.value)
		return m, nil

	case promptSuggest:
		m.suggesting = true
		m.setStatus("Asking for suggestions about " + msg.value)
		return m, tea.Batch(m.spinner.Tick, suggestCmd(m.ctx, m.gen, msg.dayID, msg.value))
	}
	return m, nil
}

// handleSuggestions adds generated topics to the day's active slot.
func (m Model) handleSuggestions(msg suggestionsMsg) (tea.Model, tea.Cmd) {
	m.suggesting = false
	if len(msg.items) == 0 {
		m.setError("No suggestions", nil)
		return m, nil
	}
	added, err := m.store.BulkAdd(msg.dayID, suggest.ToFields(msg.items))
	if err != nil {
		m.setError("Could not add suggestions", err)
		return m, nil
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("Added %d suggested topics", len(added)))
	return m, nil
}

// handleTopicEdited writes the changed fields of an edited topic.
func (m Model) handleTopicEdited(msg topicEditedMsg) (tea.Model, tea.Cmd) {
	day, _ := m.snapshot.Day(msg.dayID)
	current, ok := day.Active().Find(msg.topicID)
	if !ok {
		return m, nil
	}
	changes := []struct {
		field draw.Field
		old   string
		next  string
	}{
		{draw.FieldTitle, current.Title, msg.fields.Title},
		{draw.FieldSideA, current.SideA, msg.fields.SideA},
		{draw.FieldSideB, current.SideB, msg.fields.SideB},
	}
	for _, c := range changes {
		if c.old == c.next {
			continue
		}
		if err := m.store.UpdateTopic(msg.dayID, msg.topicID, c.field, c.next); err != nil {
			m.setError("Could not save topic", err)
			break
		}
	}
	m.refresh()
	return m, nil
}

// renderManage renders the topic list of the active slot.
func (m Model) renderManage() string {
	styles := m.theme.Styles()
	slot := m.activeSlot()
	used := slot.UsedCount()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("Registered "))
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("%d", len(slot.Topics))))
	b.WriteString(styles.MutedText.Render("   Used "))
	b.WriteString(styles.DangerText.Render(fmt.Sprintf("%d", used)))
	b.WriteString(styles.MutedText.Render("   Available "))
	b.WriteString(styles.SuccessText.Render(fmt.Sprintf("%d", len(slot.Topics)-used)))
	b.WriteString("\n\n")

	height := m.contentHeight() - 2
	switch {
	case len(slot.Topics) == 0:
		b.WriteString(styles.FaintText.Render("No topics yet. Press a to add one or S for suggestions."))
	case !m.showTopics:
		b.WriteString(styles.FaintText.Render("Topic list hidden. Press v to show it."))
	default:
		b.WriteString(m.renderTopicList(slot.Topics, height, styles))
	}

	return m.renderBox(slot.Name, b.String(), m.width, m.contentHeight())
}

func (m Model) renderTopicList(topics []draw.Topic, height int, styles Styles) string {
	height = max(height, 1)
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(topics))

	inner := max(m.width-6, 20)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		t := topics[i]
		mark := styles.SuccessText.Render("○")
		if t.IsUsed {
			mark = styles.FaintText.Render("●")
		}
		title := truncate(displayTitle(t.Title), inner/2)
		sides := truncate(fmt.Sprintf("A: %s  B: %s", orNoContent(t.SideA), orNoContent(t.SideB)), inner-len([]rune(title))-6)
		row := padRight(title, inner/2) + "  " + sides
		switch {
		case i == m.cursor:
			row = styles.Selected.Width(inner - 2).Render(row)
		case t.IsUsed:
			row = styles.FaintText.Render(row)
		default:
			row = styles.Text.Render(row)
		}
		lines = append(lines, mark+" "+row)
	}
	return strings.Join(lines, "\n")
}

// renderBox draws a titled rounded box of the given outer size.
func (m Model) renderBox(title, content string, width, height int) string {
	styles := m.theme.Styles()
	body := styles.AccentText.Bold(true).Render(title) + "\n" + content
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(max(width-2, 10)).
		Height(max(height-2, 3)).
		Render(body)
}
