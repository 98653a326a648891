package views

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#f38e82", Dark: "#f9a799"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
)

const (
	iconBookmarked = "★"
	iconBookmark   = "☆"
	iconSelected   = "▸"
	iconError      = "✗"
	iconMessage    = "✓"
	spinnerText    = "Loading..."
)

type styles struct {
	title    lipgloss.Style
	heading  lipgloss.Style
	muted    lipgloss.Style
	errText  lipgloss.Style
	message  lipgloss.Style
	selected lipgloss.Style
	card     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(colorAccent),
		heading:  r.NewStyle().Bold(true),
		muted:    r.NewStyle().Foreground(colorMuted),
		errText:  r.NewStyle().Foreground(colorFail),
		message:  r.NewStyle().Foreground(colorPass),
		selected: r.NewStyle().Bold(true).Foreground(colorAccent),
		card:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1),
	}
}

// formatQuantity prints at most two decimals and drops trailing zeros:
// 0.5 -> "0.5", 2 -> "2", 0.666.. -> "0.67".
func formatQuantity(q *float64) string {
	if q == nil {
		return ""
	}
	return strconv.FormatFloat(roundTo2(*q), 'f', -1, 64)
}

func roundTo2(v float64) float64 {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return v
	}
	return r
}
