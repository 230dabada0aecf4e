package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"artgrip/internal/ui/input/types"
)

const searchPrompt = "Search artworks: "

// SearchMode edits the search term. Keys it does not claim go to the text input.
type SearchMode struct {
	input *textinput.Model
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{input: ti}
}

func (m *SearchMode) Name() string { return "search" }

func (m *SearchMode) Prompt() string { return searchPrompt }

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	if m.input == nil {
		return nil
	}
	m.input.Prompt = ""
	m.input.SetValue("")
	m.input.Focus()
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	if m.input == nil {
		return nil
	}
	m.input.Blur()
	m.input.SetValue("")
	return nil
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyEsc:
		return []types.Action{types.CancelTextAction{}, back()}, true
	case tea.KeyEnter:
		return []types.Action{types.SubmitTextAction{Text: m.value(), Mode: types.ModeSearch}, back()}, true
	}
	return nil, false
}

func (m *SearchMode) value() string {
	if m.input == nil {
		return ""
	}
	return m.input.Value()
}

func back() types.Action {
	return types.ChangeModeAction{Mode: types.ModeNormal}
}
