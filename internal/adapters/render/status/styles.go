package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	thread     lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	label      lipgloss.Style
	labelRisk  lipgloss.Style
	prompt     lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barLow     lipgloss.Style
	barEmpty   lipgloss.Style
	barText    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		thread:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		labelRisk:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("209")),
		prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(2),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barLow:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barText:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}
