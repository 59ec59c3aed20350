package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"aptqueue/internal/queue"
	"aptqueue/internal/stats"
)

// composite splices panel into base at the given cell position, preserving
// the styled base text on either side. Rows outside the base are dropped,
// so an overlay on an undersized terminal degrades instead of panicking.
func composite(base, panel string, row, col int) string {
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}
	baseLines := strings.Split(base, "\n")
	panelLines := strings.Split(panel, "\n")
	panelWidth := lipgloss.Width(panel)

	for i, panelLine := range panelLines {
		r := row + i
		if r >= len(baseLines) {
			break
		}
		line := baseLines[r]
		left := ansi.Truncate(line, col, "")
		leftPad := max(0, col-ansi.StringWidth(left))
		right := ansi.TruncateLeft(line, col+panelWidth, "")
		linePad := max(0, panelWidth-ansi.StringWidth(panelLine))

		baseLines[r] = left + strings.Repeat(" ", leftPad) +
			panelLine + strings.Repeat(" ", linePad) + right
	}
	return strings.Join(baseLines, "\n")
}

const statsPanelWidth = 30

func (m Model) renderStatsPanel() string {
	now := time.Now()
	bold := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Bold(true)

	lines := []string{
		" Date: " + now.Format("2006-01-02"),
		" Time: " + now.Format("03:04:05 PM"),
		"",
		" " + bold.Render("Progress"),
		fmt.Sprintf(" Packages: %d / %d", m.stats.Processed, m.stats.Total),
		" Elapsed:  " + stats.FormatClock(m.stats.Elapsed, true),
		" ETR:      " + stats.FormatClock(m.stats.ETR, m.stats.HasETR),
	}
	return m.box(" Statistics ", lines, statsPanelWidth, len(lines)+2)
}

func (m Model) renderHelpPanel() string {
	legend := []struct {
		status queue.Status
		label  string
	}{
		{queue.StatusProcessing, "Processing"},
		{queue.StatusSuccess, "Success"},
		{queue.StatusFailure, "Failed"},
		{queue.StatusSkipped, "Skipped"},
		{queue.StatusQueued, "Queued"},
	}

	var lines []string
	lines = append(lines, "")
	for _, entry := range legend {
		glyph := m.theme.StatusStyle(entry.status).Bold(true).Render(Glyph(entry.status))
		lines = append(lines, " "+glyph+" - "+entry.label)
	}
	lines = append(lines,
		"",
		" ↑/↓ PgUp/PgDn - Scroll List",
		" ctrl+d/u - Scroll Output",
		" f - Follow Active Package",
		" s - Toggle Stats",
		" T - Cycle Theme",
		" h - Toggle Help",
		" q - Quit",
	)
	return m.box(" Help ", lines, statsPanelWidth, len(lines)+2)
}
