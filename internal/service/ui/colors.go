package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle uses ANSI 6 (Cyan) for headings, readable on both themes
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (Green) for arguments and usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Bright Black / Gray) keeps descriptions quiet
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow) for flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// AgentStyle ANSI 5 (Magenta) marks which advisor is speaking
	AgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)

	// DebateStyle dims the losing candidates in debug output
	DebateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)
