package state

import "time"

// AppState contains the UI state that outlives individual screens
type AppState struct {
	// Window size
	Width  int
	Height int

	// Screen bookkeeping
	RootScreen     string // explore, categories or favorites
	SearchTerm     string // last submitted search
	DisplayedArtID int    // artwork shown on the details screen, 0 when none

	// Status bar
	StatusMessage string
	StatusIsError bool
	StatusSeq     int // bumps on every message so stale clears are ignored
	StatusSetAt   time.Time

	// Pager
	InPagerMode bool
}

// NewAppState creates a new application state
func NewAppState(rootScreen string) *AppState {
	return &AppState{
		RootScreen: rootScreen,
		Width:      80,
		Height:     24,
	}
}

// SetStatus replaces the status message and returns its sequence number
func (s *AppState) SetStatus(msg string, isError bool) int {
	s.StatusSeq++
	s.StatusMessage = msg
	s.StatusIsError = isError
	s.StatusSetAt = time.Now()
	return s.StatusSeq
}

// ClearStatus clears the message if seq is still current
func (s *AppState) ClearStatus(seq int) {
	if seq != s.StatusSeq {
		return
	}
	s.StatusMessage = ""
	s.StatusIsError = false
}

// BodyHeight is the number of lines left for screen content after the
// title, tab bar, footer and status lines
func (s *AppState) BodyHeight() int {
	h := s.Height - chromeLines
	if h < 1 {
		h = 1
	}
	return h
}

const chromeLines = 5
