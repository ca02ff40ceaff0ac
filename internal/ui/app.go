package ui

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/five82/podium/internal/config"
	"github.com/five82/podium/internal/draw"
	"github.com/five82/podium/internal/prefs"
	"github.com/five82/podium/internal/state"
	"github.com/five82/podium/internal/suggest"
)

// View represents the current active view.
type View int

const (
	ViewManage View = iota
	ViewDraw
)

func (v View) pref() string {
	if v == ViewDraw {
		return prefs.ViewDraw
	}
	return prefs.ViewManage
}

func viewFromPref(name string) View {
	if name == prefs.ViewDraw {
		return ViewDraw
	}
	return ViewManage
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Generator suggest.Generator
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *zap.Logger
}

// shuffleState drives the reveal animation for one committed draw.
type shuffleState struct {
	active bool
	seq    int
	frame  int
	dayID  int
	slotID int
	pool   []string
	title  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	gen       suggest.Generator
	config    config.Config
	prefsPath string
	logger    *zap.Logger
	keys      keyMap
	rng       *rand.Rand // presentation only; never decides a draw

	// UI state
	theme  Theme
	view   View
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot
	dayIdx   int

	// Manage state
	cursor     int
	showTopics bool

	// Status line
	status    string
	statusErr bool

	// Overlays
	modal    Modal
	showHelp bool
	showLogs bool
	logView  viewport.Model

	// Suggestions
	spinner    spinner.Model
	suggesting bool

	// Draw room
	shuffle  shuffleState
	renderer *glamour.TermRenderer
	rendered int // width the renderer was built for
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	gen := opts.Generator
	if gen == nil {
		gen = suggest.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if len(cfg.Days) == 0 {
		cfg.Days = config.Default().Days
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	now := uint64(time.Now().UnixNano())
	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		gen:       gen,
		config:    cfg,
		prefsPath: opts.PrefsPath,
		logger:    logger,
		keys:      DefaultKeyMap(),
		rng:       rand.New(rand.NewPCG(now, now>>1|1)),
		theme:     GetTheme(opts.Prefs.Theme),
		view:      viewFromPref(opts.Prefs.View),
		spinner:   sp,
	}
	m.dayIdx = m.dayIndex(opts.Prefs.ActiveDay)
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeLogView()
		m.ensureRenderer()
		return m, nil

	case confirmedMsg:
		return m.handleConfirmed(msg)

	case promptSubmittedMsg:
		return m.handlePrompt(msg)

	case topicEditedMsg:
		return m.handleTopicEdited(msg)

	case shuffleTickMsg:
		return m.handleShuffleTick(msg)

	case suggestionsMsg:
		return m.handleSuggestions(msg)

	case logTailMsg:
		m.handleLogTail(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.suggesting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.modal != nil {
		var (
			cmd  tea.Cmd
			done bool
		)
		m.modal, cmd, done = m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal != nil {
		var (
			cmd  tea.Cmd
			done bool
		)
		m.modal, cmd, done = m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.showLogs {
		return m.handleLogsKey(msg)
	}

	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.renderer = nil
		m.ensureRenderer()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, keys.Logs):
		m.showLogs = true
		m.resizeLogView()
		return m, m.readLogsCmd()

	case key.Matches(msg, keys.Tab):
		if m.view == ViewManage {
			return m.setView(ViewDraw), nil
		}
		return m.setView(ViewManage), nil

	case key.Matches(msg, keys.ViewManage):
		return m.setView(ViewManage), nil

	case key.Matches(msg, keys.ViewDraw):
		return m.setView(ViewDraw), nil

	case key.Matches(msg, keys.Day):
		idx := int(msg.Runes[0]-'0') - 1
		if idx < len(m.config.Days) {
			m.selectDay(idx)
		}
		return m, nil

	case key.Matches(msg, keys.PrevDay):
		m.selectDay((m.dayIdx + len(m.config.Days) - 1) % len(m.config.Days))
		return m, nil

	case key.Matches(msg, keys.NextDay):
		m.selectDay((m.dayIdx + 1) % len(m.config.Days))
		return m, nil

	case key.Matches(msg, keys.PrevSlot):
		m.stepSlot(-1)
		return m, nil

	case key.Matches(msg, keys.NextSlot):
		m.stepSlot(1)
		return m, nil

	case key.Matches(msg, keys.AddSlot):
		m.addSlot()
		return m, nil

	case key.Matches(msg, keys.DropSlot):
		m.confirmRemoveSlot()
		return m, nil

	case key.Matches(msg, keys.RenameSlot):
		slot := m.activeSlot()
		m.modal = newPromptModal("Rename slot", slot.Name, "Slot name",
			promptSubmittedMsg{purpose: promptRenameSlot, dayID: m.dayID(), slotID: slot.ID})
		return m, nil
	}

	switch m.view {
	case ViewManage:
		return m.handleManageKey(msg)
	case ViewDraw:
		return m.handleDrawKey(msg)
	}
	return m, nil
}

func (m Model) setView(v View) Model {
	if m.view != v {
		m.view = v
		m.savePrefs()
	}
	return m
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSlotBar())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.view {
	case ViewDraw:
		b.WriteString(m.renderDraw())
	default:
		b.WriteString(m.renderManage())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// Data helpers

func (m *Model) refresh() {
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	if n := len(m.activeSlot().Topics); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) dayID() int {
	return m.config.Days[m.dayIdx].ID
}

func (m Model) dayIndex(id int) int {
	for i, d := range m.config.Days {
		if d.ID == id {
			return i
		}
	}
	return 0
}

func (m Model) day() draw.Day {
	d, _ := m.snapshot.Day(m.dayID())
	return d
}

func (m Model) activeSlot() draw.Slot {
	return m.day().Active()
}

func (m *Model) selectDay(idx int) {
	if idx < 0 || idx >= len(m.config.Days) || idx == m.dayIdx {
		return
	}
	m.dayIdx = idx
	m.cursor = 0
	m.refresh()
	m.savePrefs()
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string, err error) {
	m.status = msg
	m.statusErr = true
	if err != nil {
		m.logger.Warn(msg, zap.Error(err), zap.Int("day", m.dayID()))
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, ActiveDay: m.dayID(), View: m.view.pref()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
