package cli

import "github.com/charmbracelet/lipgloss"

// Color palette shared by every command's output.
const (
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorError   = lipgloss.Color("#EF4444")
)

var (
	// DeprecatedStyle marks notices printed by renamed commands.
	DeprecatedStyle = lipgloss.NewStyle().Foreground(ColorError)

	// SuccessStyle is for completed actions.
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	// SubtitleStyle is for secondary text.
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
