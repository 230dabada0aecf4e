package types

// Scroll actions
type ScrollAction struct {
	Lines int // negative scrolls up
}

func (a ScrollAction) Type() string { return "scroll" }

type PageAction struct {
	Direction string // "up" or "down"
}

func (a PageAction) Type() string { return "page" }

// Screen actions
type SwitchScreenAction struct {
	Screen string // explore, categories or favorites
}

func (a SwitchScreenAction) Type() string { return "switch_screen" }

type NextScreenAction struct{}

func (a NextScreenAction) Type() string { return "next_screen" }

type OpenAction struct{}

func (a OpenAction) Type() string { return "open" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

// Artwork actions
type ToggleFavoriteAction struct{}

func (a ToggleFavoriteAction) Type() string { return "toggle_favorite" }

type RetryAction struct{}

func (a RetryAction) Type() string { return "retry" }

type ToggleArtistAction struct{}

func (a ToggleArtistAction) Type() string { return "toggle_artist" }

type ArtistWorksAction struct{}

func (a ArtistWorksAction) Type() string { return "artist_works" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Other actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
