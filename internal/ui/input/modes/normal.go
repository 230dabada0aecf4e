package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"artgrip/internal/ui/input/types"
)

type NormalMode struct {
	keys KeyMap
}

func NewNormalMode(keys KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		return []types.Action{types.ScrollAction{Lines: -1}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.ScrollAction{Lines: 1}}, true
	case key.Matches(msg, k.PageUp):
		return []types.Action{types.PageAction{Direction: "up"}}, true
	case key.Matches(msg, k.PageDown):
		return []types.Action{types.PageAction{Direction: "down"}}, true

	case key.Matches(msg, k.NextTab):
		return []types.Action{types.NextScreenAction{}}, true
	case key.Matches(msg, k.Explore):
		return []types.Action{types.SwitchScreenAction{Screen: "explore"}}, true
	case key.Matches(msg, k.Category):
		return []types.Action{types.SwitchScreenAction{Screen: "categories"}}, true
	case key.Matches(msg, k.Favorites):
		return []types.Action{types.SwitchScreenAction{Screen: "favorites"}}, true
	case key.Matches(msg, k.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case key.Matches(msg, k.Open):
		if ctx.HasFocus() && !ctx.OnDetails() {
			return []types.Action{types.OpenAction{}}, true
		}
		return nil, true
	case key.Matches(msg, k.Favorite):
		if ctx.HasFocus() {
			return []types.Action{types.ToggleFavoriteAction{}}, true
		}
		return nil, true
	case key.Matches(msg, k.Retry):
		return []types.Action{types.RetryAction{}}, true
	case key.Matches(msg, k.Artist):
		if ctx.OnDetails() {
			return []types.Action{types.ToggleArtistAction{}}, true
		}
		return nil, false
	case key.Matches(msg, k.Works):
		if ctx.OnDetails() {
			return []types.Action{types.ArtistWorksAction{}}, true
		}
		return nil, false
	case key.Matches(msg, k.Pager):
		if ctx.OnDetails() {
			return []types.Action{types.OpenPagerAction{}}, true
		}
		return nil, false

	case key.Matches(msg, k.Back):
		if ctx.CanGoBack() {
			return []types.Action{types.BackAction{}}, true
		}
		return nil, true
	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}
