package cli

import (
	"charm.land/lipgloss/v2"
)

// Palette
var (
	colorPrimary = lipgloss.Color("#22D3EE")
	colorAccent  = lipgloss.Color("#A78BFA")
	colorSuccess = lipgloss.Color("#34D399")
	colorWarn    = lipgloss.Color("#FBBF24")
	colorError   = lipgloss.Color("#F87171")
	colorDim     = lipgloss.Color("#94A3B8")
	colorCoach   = lipgloss.Color("#3B82F6")
	colorRival   = lipgloss.Color("#EF4444")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarn)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true)
)

var difficultyColors = map[string]string{
	"Easy":   "#34D399",
	"Medium": "#FBBF24",
	"Hard":   "#F87171",
}
