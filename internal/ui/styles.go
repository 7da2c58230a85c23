package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/froggen/ascii-frog/internal/models"
)

// Design system colors, adaptive to the terminal background
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "25", Dark: "33"}

	ColorSuccess = lipgloss.AdaptiveColor{Light: "28", Dark: "10"}
	ColorError   = lipgloss.AdaptiveColor{Light: "160", Dark: "9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "25", Dark: "12"}

	ColorTextDim = lipgloss.AdaptiveColor{Light: "243", Dark: "240"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "250", Dark: "238"}
)

// Component styles
var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleTextDim = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true).
			Padding(0, 1)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true).
			Padding(0, 1)

	StyleInfo = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Padding(0, 1)

	StyleListPane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)
)

// terminalStyle draws the frog pane with the configured widget theme
func terminalStyle(theme models.TerminalTheme) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Cursor)).
		Background(lipgloss.Color(theme.Background)).
		Foreground(lipgloss.Color(theme.Foreground)).
		Padding(0, 1)
}

func promptStyle(theme models.TerminalTheme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Cursor)).Bold(true)
}

// CreateStatus renders a status line in the style of its kind
func CreateStatus(text string, statusType string) string {
	switch statusType {
	case "success":
		return StyleSuccess.Render(text)
	case "error":
		return StyleError.Render(text)
	default:
		return StyleInfo.Render(text)
	}
}

// CenterModal places content in the middle of the given area
func CenterModal(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
