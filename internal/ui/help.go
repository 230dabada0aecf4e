package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
	"github.com/pkg/errors"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Navigation", []helpEntry{
		{"↑/↓, j/k", "Scroll one line"},
		{"PgUp/PgDn", "Scroll half a screen"},
		{"Ctrl+U/D", "Scroll half a screen"},
		{"Wheel", "Scroll three lines"},
		{"Tab", "Next screen"},
		{"1/2/3", "Explore, categories, favorites"},
		{"Enter", "Open artwork or category"},
		{"Esc", "Back"},
	}},
	{"Artworks", []helpEntry{
		{"s", "Save or unsave artwork"},
		{"r", "Retry failed pages"},
		{"a", "Show artist (details)"},
		{"w", "More works by the artist (details)"},
		{"o", "Open description in pager (details)"},
	}},
	{"Search", []helpEntry{
		{"/", "Search public domain artworks"},
		{"Enter", "Run search"},
		{"Esc", "Cancel"},
	}},
	{"Other", []helpEntry{
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// RenderHelpContentPlain generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("artgrip Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Data: Art Institute of Chicago API. Only public domain works are listed."))
	return help.String()
}

// PagerOps runs ov on top of the paused program
type PagerOps struct {
	program *tea.Program
}

// NewPagerOps creates pager operations for program
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// Show displays content in ov until the user quits it
func (p *PagerOps) Show(content string) error {
	if p == nil || p.program == nil {
		return errors.New("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return errors.Wrap(err, "release terminal")
	}
	defer func() {
		// give ov a moment to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return errors.Wrap(err, "open pager")
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showPager hands content to ov off the UI loop
func (m *Model) showPager(content string) tea.Cmd {
	if m.pager == nil {
		return m.setStatus("Pager unavailable", true)
	}
	m.state.InPagerMode = true
	pager := m.pager
	return func() tea.Msg {
		return pagerDoneMsg{err: pager.Show(content)}
	}
}
