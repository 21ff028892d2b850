package tui

import "github.com/charmbracelet/lipgloss"

// Layout constants shared by the dashboard views.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 5

	// summaryHeight is the vertical space reserved above the managers
	// table for the stats box and status bar.
	summaryHeight = 9

	borderPadding = 4

	filterInputCharLimit = 64
	filterInputWidth     = 40
)

// Shared lipgloss styles for the dashboard.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	CriticalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				BorderBottom(true).
				Bold(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(false)
)

// scoreStyle picks a style for a 1-10 category score: weak scores stand
// out, strong scores stay neutral.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score <= 0:
		return SubtleStyle
	case score < 4:
		return CriticalStyle
	case score < 6:
		return WarningStyle
	default:
		return ValueStyle
	}
}
