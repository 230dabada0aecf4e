package views

import (
	"fmt"

	"artgrip/internal/domain"
)

// TileHeight is the number of lines one artwork tile occupies
const TileHeight = 4

// TileOptions controls how a tile is drawn
type TileOptions struct {
	Focused  bool
	Saved    bool
	ImageURL string // empty hides the link line contents
}

// TileLines renders rec as exactly TileHeight lines: title, size, image
// link and a blank separator
func TileLines(s *Styles, rec domain.ArtRecord, opts TileOptions) []string {
	return []string{
		TileTitleLine(s, rec, opts.Focused, opts.Saved),
		"  " + s.Dim.Render(SizeLine(rec.Thumbnail)),
		"  " + linkLine(s, rec, opts.ImageURL),
		"",
	}
}

// TileTitleLine renders the first line of a tile
func TileTitleLine(s *Styles, rec domain.ArtRecord, focused, saved bool) string {
	title := rec.Title
	if title == "" {
		title = "Untitled"
	}

	marker := "  "
	style := s.TileTitle
	if focused {
		marker = "▶ "
		style = s.Focused
	}

	line := marker + style.Render(title)
	if saved {
		line += " " + s.Saved.Render("★")
	}
	return line
}

// SizeLine describes the thumbnail dimensions and aspect ratio
func SizeLine(t domain.Thumbnail) string {
	ratio, ok := t.AspectRatio()
	if !ok {
		return "size unknown"
	}
	return fmt.Sprintf("%d×%d  aspect %.2f", *t.Width, *t.Height, ratio)
}

func linkLine(s *Styles, rec domain.ArtRecord, url string) string {
	if url == "" {
		return s.Label.Render("image " + rec.ImageID)
	}
	return s.Link.Render(url)
}
