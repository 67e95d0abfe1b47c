package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	App        lipgloss.Style
	Header     lipgloss.Style
	Status     lipgloss.Style
	Panel      lipgloss.Style
	ListHeader lipgloss.Style
	ListItem   lipgloss.Style
	ListActive lipgloss.Style
	Favorite   lipgloss.Style
	KeyHint    lipgloss.Style
	Error      lipgloss.Style
	Muted      lipgloss.Style
}

func DefaultStyles() Styles {
	accent := lipgloss.Color("208")
	subtle := lipgloss.Color("241")

	return Styles{
		App:        lipgloss.NewStyle().Padding(1, 2),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(subtle).Padding(0, 1),
		ListHeader: lipgloss.NewStyle().Bold(true).Foreground(subtle),
		ListItem:   lipgloss.NewStyle(),
		ListActive: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Favorite:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		KeyHint:    lipgloss.NewStyle().Foreground(subtle),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Muted:      lipgloss.NewStyle().Foreground(subtle),
	}
}
