package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, readable on light and dark terminals
var (
	Primary = lipgloss.Color("#2563EB") // Blue
	Accent  = lipgloss.Color("#D97706") // Amber
	Success = lipgloss.Color("#16A34A") // Green
	Error   = lipgloss.Color("#DC2626") // Red
	TextDim = lipgloss.Color("#64748B") // Slate
	Border  = lipgloss.Color("#94A3B8") // Light slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Label = lipgloss.NewStyle().
		Bold(true)
)

// States
var (
	OK = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Accent)

	Fail = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)
