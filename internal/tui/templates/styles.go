package templates

import (
	"github.com/charmbracelet/lipgloss"

	"templatehub/internal/tui/theme"
)

var (
	// Title
	titleStyle = theme.Title.Padding(0, 1)

	// List items
	listItemStyle = lipgloss.NewStyle().
			Foreground(theme.Text).
			Padding(0, 2)

	selectedListItemStyle = theme.Selected.Padding(0, 2)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(theme.TextMuted).
				PaddingLeft(6)

	// Muted text: counts, dates, scroll markers
	mutedStyle = theme.Muted

	// Empty and error states
	stateTitleStyle = theme.Subtitle
	errorStyle      = theme.Error

	// Filter bar
	filterKeyStyle = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	// Search
	searchLabelStyle = lipgloss.NewStyle().
				Foreground(theme.Secondary).
				Bold(true)

	// Detail header
	leadStyle = lipgloss.NewStyle().Foreground(theme.Text).Italic(true)
)
