package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"aptqueue/internal/queue"
	"aptqueue/internal/stats"
)

// Geometry. One header line on top, the rest split into two bordered panes.

func (m Model) contentHeight() int { return max(0, m.height-1) }

func (m Model) paneInnerHeight() int { return max(0, m.contentHeight()-2) }

// visibleRows is the number of list rows the left pane can show.
func (m Model) visibleRows() int { return m.paneInnerHeight() }

func (m Model) listWidth() int { return max(0, m.width/2) }

func (m Model) logWidth() int { return max(0, m.width-m.listWidth()) }

func (m Model) logInnerWidth() int { return max(0, m.logWidth()-2) }

// View implements tea.Model. All panes are staged into one string; Bubble
// Tea commits the frame atomically.
func (m Model) View() string {
	if !m.ready || m.quitting {
		return ""
	}

	base := m.renderHeader()
	if m.paneInnerHeight() > 0 && m.width >= 8 {
		base += "\n" + lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.renderListPane(),
			m.renderLogPane(),
		)
	}

	// Overlays stack above the base panes; help is drawn last so it wins
	// on overlap.
	if m.showStats {
		panel := m.renderStatsPanel()
		base = composite(base, panel, 1, m.width-lipgloss.Width(panel)-1)
	}
	if m.showHelp {
		panel := m.renderHelpPanel()
		row := (m.height - lipgloss.Height(panel)) / 2
		col := (m.width - lipgloss.Width(panel)) / 2
		base = composite(base, panel, row, col)
	}
	return base
}

func (m Model) renderHeader() string {
	theme := m.theme
	logo := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning)).Bold(true).Render("aptqueue")
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted))

	var parts []string
	parts = append(parts, logo)

	if m.driver.Done() {
		done := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Success)).Bold(true)
		parts = append(parts, done.Render("Installation run complete. Press 'q' to exit."))
	} else {
		counts := queue.Count(m.driver.Jobs())
		parts = append(parts,
			fmt.Sprintf("%d/%d", m.stats.Processed, m.stats.Total),
			lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Success)).Render(fmt.Sprintf("✔ %d", counts.Succeeded)),
			lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Danger)).Render(fmt.Sprintf("✖ %d", counts.Failed)),
			lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Info)).Render(fmt.Sprintf("S %d", counts.Skipped)),
			muted.Render("elapsed "+stats.FormatClock(m.stats.Elapsed, true)),
		)
	}
	parts = append(parts, muted.Render("h help · s stats · q quit"))

	return lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Surface)).
		Width(m.width).
		Render(strings.Join(parts, "  "))
}

// renderListPane draws the visible queue slice with per-status glyphs and a
// scrollbar thumb when the queue overflows the pane.
func (m Model) renderListPane() string {
	jobs := m.driver.Jobs()
	rows := m.visibleRows()
	inner := max(0, m.listWidth()-2)

	hasBar := len(jobs) > rows
	textWidth := inner
	if hasBar {
		textWidth = max(0, inner-1)
	}

	barStyle := m.theme.BorderStyle()
	thumb := m.scrollbarThumb(rows)

	lines := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		idx := m.listOffset + i
		var text string
		if idx < len(jobs) {
			job := jobs[idx]
			style := m.theme.StatusStyle(job.Status)
			text = style.Render(ansi.Truncate(Glyph(job.Status)+" "+job.Key, textWidth, ""))
		}
		if hasBar {
			pad := max(0, textWidth-ansi.StringWidth(text))
			bar := " "
			if i == thumb {
				bar = barStyle.Render("█")
			}
			text += strings.Repeat(" ", pad) + bar
		}
		lines = append(lines, text)
	}

	return m.box(" Packages (↑/↓ PgUp/PgDn) ", lines, m.listWidth(), m.contentHeight())
}

// scrollbarThumb returns the row of the scrollbar thumb, or -1 when no
// scrollbar is drawn.
func (m Model) scrollbarThumb(rows int) int {
	maxScroll := m.maxListScroll()
	if maxScroll <= 0 || rows <= 0 {
		return -1
	}
	return int(math.Round(float64(m.listOffset) / float64(maxScroll) * float64(rows-1)))
}

func (m Model) renderLogPane() string {
	lines := strings.Split(m.logView.View(), "\n")
	return m.box(" Output ", lines, m.logWidth(), m.contentHeight())
}

// box hand-rolls a bordered pane with the title embedded in the top border:
// ┌─ Title ────┐. Lines are clipped and padded to the inner width.
func (m Model) box(title string, lines []string, width, height int) string {
	inner := width - 2
	if inner <= 0 || height < 2 {
		return ""
	}

	bs := m.theme.BorderStyle()
	titleStyled := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Bold(true).Render(title)
	titleWidth := ansi.StringWidth(title)
	if titleWidth+1 > inner {
		titleStyled = ""
		titleWidth = 0
	}

	var b strings.Builder
	if titleStyled != "" {
		b.WriteString(bs.Render("┌─"))
		b.WriteString(titleStyled)
		b.WriteString(bs.Render(strings.Repeat("─", max(0, inner-titleWidth-1)) + "┐"))
	} else {
		b.WriteString(bs.Render("┌" + strings.Repeat("─", inner) + "┐"))
	}

	side := bs.Render("│")
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], inner, "")
		}
		pad := max(0, inner-ansi.StringWidth(line))
		b.WriteString("\n")
		b.WriteString(side)
		b.WriteString(line)
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(side)
	}

	b.WriteString("\n")
	b.WriteString(bs.Render("└" + strings.Repeat("─", inner) + "┘"))
	return b.String()
}

// wrapLines rewraps the whole log buffer to the pane width. The rewrap is
// total rather than incremental; the buffer is capped, so this stays cheap
// enough for every redraw.
func wrapLines(lines []string, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(ansi.Wrap(line, width, ""))
	}
	return b.String()
}
