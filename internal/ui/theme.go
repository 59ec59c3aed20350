package ui

import (
	"github.com/charmbracelet/lipgloss"

	"aptqueue/internal/queue"
)

// Theme defines colors for the UI. Status colors and glyphs drive the list
// pane rows through an explicit lookup keyed by job status.
type Theme struct {
	Name string

	Background string
	Surface    string
	Border     string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	StatusColors map[queue.Status]string
}

// statusGlyphs is the two-cell marker drawn before each list row.
var statusGlyphs = map[queue.Status]string{
	queue.StatusQueued:     "  ",
	queue.StatusProcessing: "->",
	queue.StatusSuccess:    " ✔",
	queue.StatusFailure:    " ✖",
	queue.StatusSkipped:    " S",
}

// Glyph returns the marker for a status.
func Glyph(s queue.Status) string {
	if g, ok := statusGlyphs[s]; ok {
		return g
	}
	return "  "
}

// StatusStyle returns the text style for a job row.
func (t Theme) StatusStyle(s queue.Status) lipgloss.Style {
	color := t.StatusColors[s]
	if color == "" {
		color = t.Text
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if s == queue.StatusProcessing {
		style = style.Bold(true)
	}
	return style
}

// BorderStyle returns the style for pane borders and titles.
func (t Theme) BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Border))
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		Border:     "#39506d", // bg4

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan

		StatusColors: map[queue.Status]string{
			queue.StatusQueued:     "#cdcecf", // fg1
			queue.StatusProcessing: "#dbc074", // yellow
			queue.StatusSuccess:    "#719cd6", // blue
			queue.StatusFailure:    "#c94f6d", // red
			queue.StatusSkipped:    "#63cdcf", // cyan
		},
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		Border:     "#54546D", // sumiInk6

		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#727169", // fujiGray
		Accent:  "#7E9CD8", // crystalBlue
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
		Info:    "#7FB4CA", // springBlue

		StatusColors: map[queue.Status]string{
			queue.StatusQueued:     "#DCD7BA", // fujiWhite
			queue.StatusProcessing: "#E6C384", // carpYellow
			queue.StatusSuccess:    "#7E9CD8", // crystalBlue
			queue.StatusFailure:    "#E46876", // waveRed
			queue.StatusSkipped:    "#7FB4CA", // springBlue
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		Border:     "#334155", // slate-700

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		StatusColors: map[queue.Status]string{
			queue.StatusQueued:     "#f1f5f9", // slate-100
			queue.StatusProcessing: "#f59e0b", // amber-500
			queue.StatusSuccess:    "#38bdf8", // sky-400
			queue.StatusFailure:    "#ef4444", // red-500
			queue.StatusSkipped:    "#06b6d4", // cyan-500
		},
	}
}
