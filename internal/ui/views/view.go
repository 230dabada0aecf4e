package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one entry of the screen switcher
type Tab struct {
	Key  string
	Name string
}

// Tabs lists the root screens in switch order
var Tabs = []Tab{
	{Key: "1", Name: "explore"},
	{Key: "2", Name: "categories"},
	{Key: "3", Name: "favorites"},
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	ActiveTab     string
	ScreenTitle   string
	ScrollInfo    string
	Body          []string // already windowed to BodyHeight
	BodyHeight    int
	InputActive   bool
	InputPrompt   string
	InputView     string
	StatusMessage string
	StatusIsError bool
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{styles: styles}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view. The output is always Height lines.
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}
	clip := lipgloss.NewStyle().MaxWidth(width)

	lines := make([]string, 0, state.Height)

	// title with right-aligned scroll info
	logo := r.styles.Title.Render("artgrip")
	if state.ScreenTitle != "" {
		logo += r.styles.Dim.Render("  " + state.ScreenTitle)
	}
	lines = append(lines, spread(logo, r.styles.Scroll.Render(state.ScrollInfo), width))

	// tab bar, replaced by the prompt while typing
	if state.InputActive {
		lines = append(lines, r.styles.Prompt.Render(state.InputPrompt)+state.InputView)
	} else {
		lines = append(lines, r.renderTabs(state.ActiveTab))
	}
	lines = append(lines, "")

	for i := 0; i < state.BodyHeight; i++ {
		if i < len(state.Body) {
			lines = append(lines, state.Body[i])
		} else {
			lines = append(lines, "")
		}
	}

	status := ""
	if state.StatusMessage != "" {
		if state.StatusIsError {
			status = r.styles.StatusError.Render(state.StatusMessage)
		} else {
			status = r.styles.StatusSuccess.Render(state.StatusMessage)
		}
	}
	lines = append(lines, status, state.HelpView)

	for i, l := range lines {
		lines[i] = clip.Render(l)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderTabs(active string) string {
	parts := make([]string, 0, len(Tabs))
	for _, t := range Tabs {
		label := t.Key + " " + t.Name
		if t.Name == active {
			parts = append(parts, r.styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, r.styles.Tab.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// spread places left and right on one line of the given width
func spread(left, right string, width int) string {
	if right == "" {
		return left
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}
