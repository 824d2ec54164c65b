package tui

import "templatehub/internal/tui/theme"

var (
	// Status bar
	StatusBarStyle = theme.StatusBar

	// Help text
	HelpStyle = theme.HelpHint
)
