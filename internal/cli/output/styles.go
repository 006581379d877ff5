package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles shared by CLI commands.
type Styles struct {
	Header1   lipgloss.Style
	Header2   lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	FilePath  lipgloss.Style
	TableName lipgloss.Style
}

func newStyles() Styles {
	return Styles{
		Header1:   lipgloss.NewStyle().Bold(true).Underline(true),
		Header2:   lipgloss.NewStyle().Bold(true),
		Bold:      lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		FilePath:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		TableName: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	}
}
