package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorDim    = lipgloss.Color("240")
	colorWhite  = lipgloss.Color("255")
)

var (
	// StyleTitle for the watch view's header.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for schema titles as they're placed.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleSuccess for the final placement-count summary.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for aborted or empty branches.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleValue for coordinate values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)
