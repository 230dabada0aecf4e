package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"artgrip/internal/domain"
)

// Fallbacks for records without a description
const (
	NoArtworkDescription = "No description available for this artwork"
	NoArtistDescription  = "No description available for this artist"
)

// DetailState is everything the details screen can show
type DetailState struct {
	Record        domain.ArtRecord // list record, shown while the detail loads
	Detail        *domain.ArtworkDetail
	Err           error
	Saved         bool
	ImageURL      string
	ShowArtist    bool
	Artist        *domain.Artist
	ArtistErr     error
	LoadingArtist bool
}

// DetailLines renders the details screen body wrapped to width
func DetailLines(s *Styles, st DetailState, width int) []string {
	var lines []string
	wrap := lipgloss.NewStyle().Width(max(width-2, 10))

	title := st.Record.Title
	if st.Detail != nil {
		title = st.Detail.Title
	}
	if title == "" {
		title = "Untitled"
	}
	heading := s.Header.Render(title)
	if st.Saved {
		heading += " " + s.Saved.Render("★ saved")
	}
	lines = append(lines, heading, "")

	switch {
	case st.Err != nil:
		lines = append(lines, s.StatusError.Render("Couldn't load artwork: "+st.Err.Error()), s.Dim.Render("press r to retry"))
		return lines
	case st.Detail == nil:
		lines = append(lines, s.StatusLoading.Render("Loading artwork…"))
		return lines
	}

	d := st.Detail
	lines = append(lines,
		field(s, "Artist", d.Author),
		field(s, "Origin", d.PlaceOfOrigin),
		field(s, "Date", d.Date),
	)
	if d.ArtworkType != "" {
		lines = append(lines, field(s, "Medium", d.ArtworkType))
	}
	if d.Dimensions != "" {
		lines = append(lines, field(s, "Dimensions", d.Dimensions))
	}
	lines = append(lines, field(s, "Size", SizeLine(d.Thumbnail)))
	if st.ImageURL != "" {
		lines = append(lines, s.Label.Render("Image      ")+s.Link.Render(st.ImageURL))
	}

	lines = append(lines, "")
	if d.Description != "" {
		lines = append(lines, strings.Split(wrap.Render(d.Description), "\n")...)
	} else {
		lines = append(lines, s.Dim.Render(NoArtworkDescription))
	}

	if st.ShowArtist {
		lines = append(lines, "")
		lines = append(lines, artistLines(s, st, wrap)...)
	}
	return lines
}

func artistLines(s *Styles, st DetailState, wrap lipgloss.Style) []string {
	switch {
	case st.ArtistErr != nil:
		return []string{s.StatusError.Render("Couldn't load artist: " + st.ArtistErr.Error())}
	case st.LoadingArtist || st.Artist == nil:
		return []string{s.StatusLoading.Render("Loading artist…")}
	}

	a := st.Artist
	name := a.Title
	if years := lifespan(a); years != "" {
		name += " " + s.Dim.Render(years)
	}
	lines := []string{s.Header.Render("About the artist"), name, ""}
	if a.Description != "" {
		lines = append(lines, strings.Split(wrap.Render(a.Description), "\n")...)
	} else {
		lines = append(lines, s.Dim.Render(NoArtistDescription))
	}
	return append(lines, "", s.Dim.Render("press w for more works by this artist"))
}

func lifespan(a *domain.Artist) string {
	switch {
	case a.BirthDate != "" && a.DeathDate != "":
		return fmt.Sprintf("(%s–%s)", a.BirthDate, a.DeathDate)
	case a.BirthDate != "":
		return fmt.Sprintf("(born %s)", a.BirthDate)
	default:
		return ""
	}
}

func field(s *Styles, label, value string) string {
	return s.Label.Render(fmt.Sprintf("%-11s", label)) + value
}
