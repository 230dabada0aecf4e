package ui

import (
	"artgrip/internal/domain"
	"artgrip/internal/eventbus"
	"artgrip/internal/pagination"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pageLoadedMsg carries a finished page fetch back to the feed that asked
type pageLoadedMsg struct {
	feed *Feed
	res  pagination.FetchResult
}

// detailLoadedMsg contains the result of an artwork lookup
type detailLoadedMsg struct {
	id     int
	detail domain.ArtworkDetail
	err    error
}

// artistLoadedMsg contains the result of an artist lookup
type artistLoadedMsg struct {
	artworkID int
	artist    domain.Artist
	err       error
}

// previewLoadedMsg carries the preview image for one category
type previewLoadedMsg struct {
	term    string
	imageID string
	err     error
}

// clearStatusMsg clears the status bar if seq is still current
type clearStatusMsg struct {
	seq int
}

// pagerDoneMsg is sent when the external pager exits
type pagerDoneMsg struct {
	err error
}
