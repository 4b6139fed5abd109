package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Tutorial    lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Loading     lipgloss.Style
	MovieTitle  lipgloss.Style
	Genre       lipgloss.Style
	Plot        lipgloss.Style
	StatPrimary lipgloss.Style
	StatWarning lipgloss.Style
	StatValue   lipgloss.Style
	StatLabel   lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Tutorial: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Italic(true),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Loading:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		MovieTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Genre:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Plot:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		StatPrimary: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("44")). // teal
			Padding(0, 1),
		StatWarning: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")). // yellow
			Padding(0, 1),
		StatValue: lipgloss.NewStyle().Bold(true),
		StatLabel: lipgloss.NewStyle().Faint(true),
		Help:      lipgloss.NewStyle().Faint(true),
	}
}
