package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"aptqueue/internal/driver"
	"aptqueue/internal/installer"
	"aptqueue/internal/queue"
)

type idleTool struct{}

func (idleTool) Installed(context.Context, string) bool { return false }
func (idleTool) Start(string) (driver.Handle, error)    { return stuckHandle{}, nil }
func (idleTool) CommandLine(name string) string         { return "apt-get install -y " + name }

type stuckHandle struct{}

func (stuckHandle) Next() (string, installer.ReadState) { return "", installer.ReadWouldBlock }
func (stuckHandle) Poll() (int, bool)                   { return 0, false }
func (stuckHandle) Terminate()                          {}

func testModel(t *testing.T, names ...string) Model {
	t.Helper()
	// Keep any prefs writes (theme cycling) inside the test sandbox.
	t.Setenv("HOME", t.TempDir())
	jobs := make([]queue.Job, len(names))
	for i, n := range names {
		jobs[i] = queue.Job{Key: n, Name: n}
	}
	d := driver.New(context.Background(), idleTool{}, nil, jobs, time.Millisecond)
	m := New(Options{Driver: d})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func manyNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = strings.Repeat("p", 1+i%5) + "kg"
	}
	return names
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(key(k))
		m = updated.(Model)
	}
	return m, cmd
}

func TestScrollStaysInBounds(t *testing.T) {
	m := testModel(t, manyNames(100)...)
	rows := m.visibleRows()
	maxScroll := 100 - rows

	for i := 0; i < 300; i++ {
		m, _ = press(t, m, "down")
		if m.listOffset < 0 || m.listOffset > maxScroll {
			t.Fatalf("offset %d out of [0,%d]", m.listOffset, maxScroll)
		}
	}
	if m.listOffset != maxScroll {
		t.Fatalf("offset = %d, want clamped at %d", m.listOffset, maxScroll)
	}

	m, _ = press(t, m, "pgup", "pgup", "pgup", "pgup", "pgup", "pgup", "pgup")
	if m.listOffset != 0 {
		t.Fatalf("offset = %d, want 0 after paging to top", m.listOffset)
	}
	m, _ = press(t, m, "up")
	if m.listOffset != 0 {
		t.Fatalf("offset = %d, want 0 (no underflow)", m.listOffset)
	}
}

func TestShortQueueNeverScrollsAndHasNoScrollbar(t *testing.T) {
	m := testModel(t, "alpha", "beta")

	m, _ = press(t, m, "down", "down", "pgdown")
	if m.listOffset != 0 {
		t.Fatalf("offset = %d, want 0 when queue fits the pane", m.listOffset)
	}
	if strings.Contains(m.renderListPane(), "█") {
		t.Fatal("scrollbar drawn for a queue that fits the pane")
	}
}

func TestScrollbarThumbPosition(t *testing.T) {
	m := testModel(t, manyNames(100)...)
	rows := m.visibleRows()

	m.listOffset = 0
	if got := m.scrollbarThumb(rows); got != 0 {
		t.Fatalf("thumb at top = %d, want 0", got)
	}
	m.listOffset = m.maxListScroll()
	if got := m.scrollbarThumb(rows); got != rows-1 {
		t.Fatalf("thumb at bottom = %d, want %d", got, rows-1)
	}
	m.listOffset = m.maxListScroll() / 2
	mid := m.scrollbarThumb(rows)
	if mid <= 0 || mid >= rows-1 {
		t.Fatalf("thumb mid-scroll = %d, want strictly inside (0,%d)", mid, rows-1)
	}
}

func TestManualScrollSuspendsFollowUntilResumed(t *testing.T) {
	m := testModel(t, manyNames(50)...)
	if !m.follow {
		t.Fatal("follow should start enabled")
	}

	m, _ = press(t, m, "down")
	if m.follow {
		t.Fatal("manual scroll should suspend follow")
	}

	m, _ = press(t, m, "f")
	if !m.follow {
		t.Fatal("f should resume follow")
	}

	m, _ = press(t, m, "pgdown", "esc")
	if !m.follow {
		t.Fatal("esc should resume follow")
	}
}

func TestStatsOverlayToggles(t *testing.T) {
	m := testModel(t, "alpha")
	if !strings.Contains(m.View(), "Statistics") {
		t.Fatal("stats overlay should be visible by default")
	}

	m, _ = press(t, m, "s")
	if strings.Contains(m.View(), "Statistics") {
		t.Fatal("s should hide the stats overlay")
	}

	m, _ = press(t, m, "s")
	if !strings.Contains(m.View(), "Statistics") {
		t.Fatal("s should show the stats overlay again")
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	m := testModel(t, "alpha")
	if strings.Contains(m.View(), "Toggle Help") {
		t.Fatal("help should start hidden")
	}

	m, _ = press(t, m, "h")
	view := m.View()
	if !strings.Contains(view, "Toggle Help") || !strings.Contains(view, "Processing") {
		t.Fatal("help overlay missing content")
	}

	// q closes help instead of quitting while help is open.
	m, cmd := press(t, m, "q")
	if cmd != nil {
		t.Fatal("q with help open should not quit")
	}
	if strings.Contains(m.View(), "Toggle Help") {
		t.Fatal("q should close the help overlay")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m := testModel(t, "alpha")
		m, cmd := press(t, m, k)
		if cmd == nil {
			t.Fatalf("%s should quit", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s returned %T, want tea.QuitMsg", k, cmd())
		}
		if !m.quitting {
			t.Fatalf("%s should mark the model quitting", k)
		}
	}
}

func TestTickAdvancesDriverAndStats(t *testing.T) {
	m := testModel(t, "alpha")

	updated, cmd := m.Update(tickMsg(time.Now()))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if !m.driver.Running() {
		t.Fatal("first tick should have launched the installer")
	}
	if m.stats.Total != 1 {
		t.Fatalf("stats.Total = %d, want 1", m.stats.Total)
	}
	if m.stats.HasETR {
		t.Fatal("ETR should be undefined before any completed install")
	}
}

func TestThemeCycles(t *testing.T) {
	m := testModel(t, "alpha")
	first := m.theme.Name
	m, _ = press(t, m, "T")
	if m.theme.Name == first {
		t.Fatal("T should switch themes")
	}
}
