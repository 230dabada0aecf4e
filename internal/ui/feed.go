package ui

import (
	"fmt"
	"math"

	"artgrip/internal/domain"
	"artgrip/internal/pagination"
	"artgrip/internal/ui/views"
)

// renderContext is shared by every feed and refreshed on resize
type renderContext struct {
	styles   *views.Styles
	width    int
	showURLs bool
	imageURL func(imageID string, width int) string
	saved    func(id int) bool
}

// Feed is a scrollable infinite list backed by a pagination controller.
// Scroll units are terminal lines.
type Feed struct {
	ctrl   *pagination.Controller
	header []string
	offset int
	rc     *renderContext
}

type tileSpan struct {
	start int
	rec   domain.ArtRecord
}

type feedLayout struct {
	lines []string
	tiles []tileSpan
}

func newFeed(ctrl *pagination.Controller, header []string, rc *renderContext) *Feed {
	return &Feed{ctrl: ctrl, header: header, rc: rc}
}

// Controller returns the feed's controller
func (f *Feed) Controller() *pagination.Controller { return f.ctrl }

// Offset returns the first visible line
func (f *Feed) Offset() int { return f.offset }

// layout renders every materialized page. The header belongs to the
// starting page and is only shown while the cursor is on it. The tail is
// padded so a viewport always has a landing zone clear of both edges.
func (f *Feed) layout(viewport int) feedLayout {
	var lay feedLayout
	s := f.rc.styles

	if f.ctrl.AtStart() {
		lay.lines = append(lay.lines, f.header...)
	}

	for _, pv := range f.ctrl.Pages() {
		switch pv.Status {
		case pagination.PageLoading:
			// reserve a full page so the window does not bounce while loading
			lay.lines = append(lay.lines, s.StatusLoading.Render(fmt.Sprintf("  Loading page %d…", pv.Index)))
			for i := 1; i < pagination.PageSize*views.TileHeight; i++ {
				lay.lines = append(lay.lines, "")
			}

		case pagination.PageFailed:
			lay.lines = append(lay.lines,
				s.StatusError.Render(fmt.Sprintf("  Couldn't load page %d: %v", pv.Index, pv.Err)),
				s.Dim.Render("  press r to retry"),
				"",
			)

		case pagination.PageReady:
			page := domain.Page{Index: pv.Index, Records: pv.Records}
			for _, rec := range page.Visible() {
				lay.tiles = append(lay.tiles, tileSpan{start: len(lay.lines), rec: rec})
				lay.lines = append(lay.lines, views.TileLines(s, rec, f.tileOptions(rec))...)
			}
		}
	}

	for len(lay.lines) < minContentHeight(viewport) {
		lay.lines = append(lay.lines, "")
	}
	return lay
}

// minContentHeight leaves room for one line of quiet scrolling on each side
// of the landing zone
func minContentHeight(viewport int) int {
	return viewport + 2*int(pagination.EdgeThreshold) + 2
}

func (f *Feed) tileOptions(rec domain.ArtRecord) views.TileOptions {
	opts := views.TileOptions{}
	if f.rc.saved != nil {
		opts.Saved = f.rc.saved(rec.ID)
	}
	if f.rc.showURLs && f.rc.imageURL != nil {
		opts.ImageURL = f.rc.imageURL(rec.ImageID, tileImageWidth)
	}
	return opts
}

// ContentHeight is the total number of rendered lines for viewport
func (f *Feed) ContentHeight(viewport int) int {
	return len(f.layout(viewport).lines)
}

// Scroll moves the view by delta lines, runs edge detection and applies the
// corrective jump when the window moves. Returned requests must be loaded.
func (f *Feed) Scroll(delta, viewport int) (pagination.Transition, []pagination.FetchRequest) {
	content := f.ContentHeight(viewport)
	f.offset = clampOffset(f.offset+delta, content, viewport)

	tr, reqs := f.ctrl.OnScroll(pagination.ScrollState{
		OffsetY:        float64(f.offset),
		ViewportHeight: float64(viewport),
		ContentHeight:  float64(content),
	})
	if tr.Moved {
		jump := int(math.Round(tr.CorrectiveOffset))
		f.offset = landingOffset(jump, f.ContentHeight(viewport), viewport)
	}
	return tr, reqs
}

// landingOffset keeps a corrective jump out of both trigger zones, with one
// line to spare, so the next small scroll cannot fire the same edge again
func landingOffset(jump, content, viewport int) int {
	threshold := int(pagination.EdgeThreshold)
	lo := threshold + 1
	hi := content - viewport - threshold - 1
	if lo > hi {
		return clampOffset((content-viewport)/2, content, viewport)
	}
	if jump < lo {
		return lo
	}
	if jump > hi {
		return hi
	}
	return jump
}

// Focused returns the record of the first tile starting inside the
// viewport, or the tile the viewport starts in
func (f *Feed) Focused(viewport int) (domain.ArtRecord, bool) {
	t, ok := f.focusIn(f.layout(viewport), viewport)
	return t.rec, ok
}

func (f *Feed) focusIn(lay feedLayout, viewport int) (tileSpan, bool) {
	offset := clampOffset(f.offset, len(lay.lines), viewport)
	var containing *tileSpan
	for i := range lay.tiles {
		t := lay.tiles[i]
		if t.start >= offset && t.start < offset+viewport {
			return t, true
		}
		if t.start < offset && t.start+views.TileHeight > offset {
			containing = &lay.tiles[i]
		}
	}
	if containing != nil {
		return *containing, true
	}
	return tileSpan{}, false
}

// Visible returns the lines inside the viewport with the focused tile
// highlighted
func (f *Feed) Visible(viewport int) []string {
	lay := f.layout(viewport)
	f.offset = clampOffset(f.offset, len(lay.lines), viewport)

	if t, ok := f.focusIn(lay, viewport); ok {
		lay.lines[t.start] = views.TileTitleLine(f.rc.styles, t.rec, true, f.tileOptions(t.rec).Saved)
	}

	end := f.offset + viewport
	if end > len(lay.lines) {
		end = len(lay.lines)
	}
	return lay.lines[f.offset:end]
}

// Close cancels the feed's in-flight fetches
func (f *Feed) Close() {
	f.ctrl.Close()
}

func clampOffset(offset, content, viewport int) int {
	maxOffset := content - viewport
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	if offset < 0 {
		return 0
	}
	return offset
}
