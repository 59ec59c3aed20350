// Package ui implements the Bubble Tea front end: a split-pane view over
// the install queue and the live installer log, with floating stats and
// help panels.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"aptqueue/internal/driver"
	"aptqueue/internal/prefs"
	"aptqueue/internal/queue"
	"aptqueue/internal/stats"
)

const defaultTick = 20 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context   context.Context
	Driver    *driver.Driver
	TickEvery time.Duration
	RunStart  time.Time
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea. One tick advances the
// driver a single step, recomputes statistics, and recomputes auto-scroll;
// the Bubble Tea renderer commits each frame atomically.
type Model struct {
	ctx       context.Context
	driver    *driver.Driver
	tickEvery time.Duration
	runStart  time.Time
	prefsPath string

	theme  Theme
	width  int
	height int
	ready  bool

	listOffset int
	follow     bool
	logView    viewport.Model
	logFollow  bool

	showStats bool
	showHelp  bool

	stats    stats.Stats
	quitting bool
}

// New creates the UI model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tickEvery := opts.TickEvery
	if tickEvery <= 0 {
		tickEvery = defaultTick
	}
	runStart := opts.RunStart
	if runStart.IsZero() {
		runStart = time.Now()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	return Model{
		ctx:       ctx,
		driver:    opts.Driver,
		tickEvery: tickEvery,
		runStart:  runStart,
		prefsPath: prefsPath,
		theme:     GetTheme(opts.ThemeName),
		follow:    true,
		logFollow: true,
		showStats: true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tickCmd(m.tickEvery))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logView = viewport.New(m.logInnerWidth(), m.paneInnerHeight())
			m.ready = true
		}
		m.logView.Width = m.logInnerWidth()
		m.logView.Height = m.paneInnerHeight()
		m.refreshLog()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleTick is one iteration of the cooperative loop: input was already
// delivered as messages, so step the driver, recompute stats, recompute
// auto-scroll, and schedule the next tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.ctx.Err() != nil {
		return m.quit()
	}

	changed := m.driver.Step(now)
	m.stats = stats.Compute(queue.Count(m.driver.Jobs()), m.driver.Durations(), m.runStart, now)

	if m.follow {
		m.recenterList()
	}
	if changed && m.ready {
		m.refreshLog()
	}

	return m, tickCmd(m.tickEvery)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "h", "?", "esc", "q":
			m.showHelp = false
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()

	case "s":
		m.showStats = !m.showStats
		return m, nil

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "up":
		m.scrollList(-1)
	case "down":
		m.scrollList(1)
	case "pgup":
		m.scrollList(-m.visibleRows())
	case "pgdown":
		m.scrollList(m.visibleRows())

	case "f", "esc":
		// Resume following the active job and the log tail.
		m.follow = true
		m.logFollow = true
		m.recenterList()
		m.logView.GotoBottom()

	case "ctrl+d":
		m.logView.HalfViewDown()
		m.logFollow = m.logView.AtBottom()
	case "ctrl+u":
		m.logView.HalfViewUp()
		m.logFollow = false

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	// Early quit terminates any in-flight installer rather than leaving it
	// orphaned; a normal completion has nothing left to kill.
	m.driver.Terminate()
	m.quitting = true
	return m, tea.Quit
}

// scrollList applies a manual scroll, which suspends auto-follow until the
// user asks for it back.
func (m *Model) scrollList(delta int) {
	m.follow = false
	m.listOffset = clamp(m.listOffset+delta, 0, m.maxListScroll())
}

// recenterList keeps the active job in the middle of the list pane.
func (m *Model) recenterList() {
	active := m.driver.ActiveIndex()
	if active < 0 {
		return
	}
	m.listOffset = clamp(active-m.visibleRows()/2, 0, m.maxListScroll())
}

func (m *Model) refreshLog() {
	m.logView.SetContent(wrapLines(m.driver.Log(), m.logInnerWidth()))
	if m.logFollow {
		m.logView.GotoBottom()
	}
}

func (m Model) maxListScroll() int {
	return max(0, len(m.driver.Jobs())-m.visibleRows())
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until quit.
func Run(opts Options) error {
	// Context cancellation is observed on the next tick so the driver can
	// terminate a live child before the program exits.
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
