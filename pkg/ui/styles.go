package ui

import "github.com/charmbracelet/lipgloss"

// Common UI styles
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).MarginLeft(2)
	HelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("255")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	RedCardStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("255")).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())
)

// Result styles
var (
	HandValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true).
			Background(lipgloss.Color("22")).
			Padding(0, 2)

	WinnerStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("46")).
			Padding(0, 1)

	LoserStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)

	StatsStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("28")).
			Padding(0, 2)

	statLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("140")).Width(18)
	statValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Align(lipgloss.Right).Width(14)
)
