package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the chat view.
type Styles struct {
	Header    lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Sources   lipgloss.Style
	Error     lipgloss.Style
	Spinner   lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the default colour scheme.
func DefaultStyles() *Styles {
	return &Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		User:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Sources:   lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("245")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Spinner:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Help:      lipgloss.NewStyle().Faint(true),
	}
}
