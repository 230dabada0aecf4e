package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Tab           lipgloss.Style
	ActiveTab     lipgloss.Style
	Header        lipgloss.Style
	TileTitle     lipgloss.Style
	Focused       lipgloss.Style
	Saved         lipgloss.Style
	Dim           lipgloss.Style
	Link          lipgloss.Style
	Label         lipgloss.Style
	Prompt        lipgloss.Style
	Scroll        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Tab:           lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		ActiveTab:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1),
		Header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		TileTitle:     lipgloss.NewStyle().Bold(true),
		Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Saved:         lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Link:          lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(0, 1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
