package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/podium/internal/draw"
	"github.com/five82/podium/internal/state"
)

type shuffleTickMsg struct{ seq int }

func shuffleTickCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return shuffleTickMsg{seq: seq}
	})
}

// drawBusy reports whether a draw on the current day is still being revealed.
func (m Model) drawBusy() bool {
	if m.shuffle.active && m.shuffle.dayID == m.dayID() {
		return true
	}
	return m.store.DrawPending(m.dayID())
}

// handleDrawKey processes keyboard input for the draw view.
func (m Model) handleDrawKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	if !key.Matches(msg, keys.Draw, keys.Undo, keys.Reset) {
		return m, nil
	}
	if m.drawBusy() {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Draw):
		return m.startDraw()

	case key.Matches(msg, keys.Undo):
		last, ok := m.activeSlot().LastDrawn()
		if !ok {
			m.setStatus("Nothing to undo")
			return m, nil
		}
		m.modal = confirmModal{
			title:   "Undo draw",
			body:    fmt.Sprintf("Return %q to the pool?", displayTitle(last.Title)),
			confirm: confirmedMsg{action: actionUndo, dayID: m.dayID()},
		}

	case key.Matches(msg, keys.Reset):
		m.modal = confirmModal{
			title:   "Reset slot",
			body:    "Every topic in this slot goes back into the pool. This cannot be undone.",
			danger:  true,
			confirm: confirmedMsg{action: actionReset, dayID: m.dayID()},
		}
	}
	return m, nil
}

// startDraw commits a draw and starts the shuffle animation that reveals it.
func (m Model) startDraw() (tea.Model, tea.Cmd) {
	dayID := m.dayID()
	slot := m.activeSlot()
	pool := make([]string, 0, len(slot.Topics))
	for _, t := range slot.Available() {
		pool = append(pool, displayTitle(t.Title))
	}

	picked, err := m.store.Draw(dayID)
	switch {
	case errors.Is(err, draw.ErrNoTopicsAvailable):
		if len(slot.Topics) == 0 {
			m.setError("No topics in this slot", nil)
		} else {
			m.setError("All topics used. Reset to draw again.", nil)
		}
		return m, nil
	case errors.Is(err, state.ErrDrawPending):
		return m, nil
	case err != nil:
		m.setError("Draw failed", err)
		return m, nil
	}
	if m.shuffle.active {
		// A shuffle left running on another day is revealed before this
		// one takes over the animation.
		m.finishShuffle()
	}
	m.refresh()
	m.logger.Info("topic drawn",
		zap.Int("day", dayID),
		zap.Int("slot", slot.ID),
		zap.String("topic", picked.ID))

	m.shuffle = shuffleState{
		active: true,
		seq:    m.shuffle.seq + 1,
		dayID:  dayID,
		slotID: slot.ID,
		pool:   pool,
	}
	if m.config.Draw.ShuffleFrames <= 0 {
		m.finishShuffle()
		return m, nil
	}
	m.shuffle.title = pool[m.rng.IntN(len(pool))]
	m.setStatus("Drawing...")
	return m, shuffleTickCmd(m.shuffle.seq, m.shuffleInterval())
}

func (m Model) shuffleInterval() time.Duration {
	if d := m.config.Draw.ShuffleInterval; d > 0 {
		return d
	}
	return DefaultShuffleInterval
}

// handleShuffleTick advances the animation; the last frame reveals the pick.
func (m Model) handleShuffleTick(msg shuffleTickMsg) (tea.Model, tea.Cmd) {
	if !m.shuffle.active || msg.seq != m.shuffle.seq {
		return m, nil
	}
	m.shuffle.frame++
	if m.shuffle.frame >= m.config.Draw.ShuffleFrames {
		m.finishShuffle()
		return m, nil
	}
	m.shuffle.title = m.shuffle.pool[m.rng.IntN(len(m.shuffle.pool))]
	return m, shuffleTickCmd(m.shuffle.seq, m.shuffleInterval())
}

func (m *Model) finishShuffle() {
	m.store.Reveal(m.shuffle.dayID, m.shuffle.slotID)
	m.shuffle.active = false
	m.refresh()

	day, _ := m.snapshot.Day(m.shuffle.dayID)
	if i := day.SlotByID(m.shuffle.slotID); i >= 0 {
		if t, ok := day.Slots[i].LastDrawn(); ok {
			m.setStatus(fmt.Sprintf("Drawn: %s", displayTitle(t.Title)))
			return
		}
	}
	m.setStatus("")
}

// renderDraw renders the draw room for the active slot.
func (m Model) renderDraw() string {
	styles := m.theme.Styles()
	slot := m.activeSlot()
	used := slot.UsedCount()
	total := len(slot.Topics)

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("All "))
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("%d", total)))
	b.WriteString(styles.MutedText.Render("   Remaining "))
	b.WriteString(styles.AccentText.Bold(true).Render(fmt.Sprintf("%d", total-used)))
	b.WriteString(styles.MutedText.Render("   Used "))
	b.WriteString(styles.DangerText.Render(fmt.Sprintf("%d", used)))
	b.WriteString("\n\n")

	inner := max(m.width-6, 20)
	switch last, hasLast := slot.LastDrawn(); {
	case m.shuffle.active && m.shuffle.dayID == m.dayID() && m.shuffle.slotID == slot.ID:
		b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center,
			styles.WarningText.Bold(true).Render("» "+truncate(m.shuffle.title, inner-4)+" «")))
	case hasLast:
		b.WriteString(m.renderCard(last, slot.Name, inner))
		if total == used {
			b.WriteString("\n")
			b.WriteString(styles.FaintText.Render("All topics used. Press R to reset."))
		}
	case total == 0:
		b.WriteString(styles.FaintText.Render("No topics in this slot. Add some in the manage view (m)."))
	case total == used:
		b.WriteString(styles.FaintText.Render("All topics used. Press R to reset."))
	default:
		b.WriteString(styles.FaintText.Render("Press space to draw a topic."))
	}

	return m.renderBox("Draw · "+slot.Name, b.String(), m.width, m.contentHeight())
}

// cardMarkdown is the markdown source of the result card.
func cardMarkdown(t draw.Topic, slotName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", displayTitle(t.Title))
	fmt.Fprintf(&b, "**Side A (pro):** %s\n\n", orNoContent(t.SideA))
	fmt.Fprintf(&b, "**Side B (con):** %s\n\n", orNoContent(t.SideB))
	fmt.Fprintf(&b, "*Slot: %s*\n", slotName)
	return b.String()
}

func (m Model) renderCard(t draw.Topic, slotName string, width int) string {
	md := cardMarkdown(t, slotName)
	if m.renderer != nil {
		if out, err := m.renderer.Render(md); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	styles := m.theme.Styles()
	return strings.Join([]string{
		styles.Text.Bold(true).Width(width).Render(displayTitle(t.Title)),
		"",
		styles.SideAText.Render("Side A (pro) ") + styles.Text.Render(orNoContent(t.SideA)),
		styles.SideBText.Render("Side B (con) ") + styles.Text.Render(orNoContent(t.SideB)),
		"",
		styles.FaintText.Render("Slot: " + slotName),
	}, "\n")
}

// ensureRenderer rebuilds the markdown renderer for the current width and theme.
func (m *Model) ensureRenderer() {
	width := max(m.width-8, 20)
	if m.renderer != nil && m.rendered == width {
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(m.theme.Markdown),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.logger.Debug("markdown renderer unavailable", zap.Error(err))
		m.renderer = nil
		return
	}
	m.renderer = r
	m.rendered = width
}
