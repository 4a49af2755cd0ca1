package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for terminal output
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"} // Purple
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	successStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
