package views

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artgrip/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestTileLinesHaveFixedHeight(t *testing.T) {
	s := NewStyles()
	recs := []domain.ArtRecord{
		{ID: 1, Title: "Nighthawks", ImageID: "a", Thumbnail: domain.Thumbnail{Width: intPtr(400), Height: intPtr(200)}},
		{ID: 2, ImageID: "b"},
	}
	for _, rec := range recs {
		lines := TileLines(s, rec, TileOptions{ImageURL: "https://x/y.jpg"})
		assert.Len(t, lines, TileHeight)
		assert.Equal(t, "", lines[TileHeight-1])
	}
}

func TestTileTitleMarkers(t *testing.T) {
	s := NewStyles()
	rec := domain.ArtRecord{ID: 1, Title: "", ImageID: "a"}

	plain := TileTitleLine(s, rec, false, false)
	assert.Contains(t, plain, "Untitled")
	assert.NotContains(t, plain, "★")

	marked := TileTitleLine(s, rec, true, true)
	assert.Contains(t, marked, "▶")
	assert.Contains(t, marked, "★")
}

func TestSizeLine(t *testing.T) {
	assert.Equal(t, "size unknown", SizeLine(domain.Thumbnail{}))
	assert.Equal(t, "size unknown", SizeLine(domain.Thumbnail{Width: intPtr(0), Height: intPtr(10)}))
	assert.Equal(t, "400×200  aspect 0.50", SizeLine(domain.Thumbnail{Width: intPtr(400), Height: intPtr(200)}))
}

func TestDetailLinesStates(t *testing.T) {
	s := NewStyles()
	rec := domain.ArtRecord{ID: 9, Title: "The Bedroom"}

	loading := DetailLines(s, DetailState{Record: rec}, 60)
	assert.Contains(t, strings.Join(loading, "\n"), "Loading artwork")

	failed := DetailLines(s, DetailState{Record: rec, Err: errors.New("timeout")}, 60)
	assert.Contains(t, strings.Join(failed, "\n"), "timeout")

	d := &domain.ArtworkDetail{
		ID: 9, Title: "The Bedroom", Author: "Vincent van Gogh", PlaceOfOrigin: "France",
		Date: "1889", Description: "A painting of a bedroom in Arles.", ArtistID: 40610,
	}
	loaded := strings.Join(DetailLines(s, DetailState{Record: rec, Detail: d, ShowArtist: true, LoadingArtist: true}, 60), "\n")
	assert.Contains(t, loaded, "Vincent van Gogh")
	assert.Contains(t, loaded, "Arles")
	assert.Contains(t, loaded, "Loading artist")

	withArtist := strings.Join(DetailLines(s, DetailState{
		Record: rec, Detail: d, ShowArtist: true,
		Artist: &domain.Artist{Title: "Vincent van Gogh", BirthDate: "1853", DeathDate: "1890"},
	}, 60), "\n")
	assert.Contains(t, withArtist, "(1853–1890)")
}

func TestCategoryLines(t *testing.T) {
	s := NewStyles()
	cats := domain.DefaultCategories()
	cats[0].PreviewID = "abc"

	lines := CategoryLines(s, cats, 1, func(id string) string { return "https://img/" + id }, func(i int) bool { return i == 2 })
	require.Len(t, lines, len(cats)*CategoryHeight)
	assert.Contains(t, lines[1], "https://img/abc")
	assert.Contains(t, lines[CategoryHeight], "▶")
	assert.Contains(t, lines[2*CategoryHeight+1], "loading preview")
	assert.Contains(t, lines[3*CategoryHeight+1], "no preview")
}

func TestRenderAlwaysFillsHeight(t *testing.T) {
	r := NewRenderer(nil)
	out := r.Render(ViewState{
		Width:      60,
		Height:     12,
		ActiveTab:  "explore",
		Body:       []string{"one", "two"},
		BodyHeight: 7,
		HelpView:   "? help",
	})
	assert.Len(t, strings.Split(out, "\n"), 12)
	assert.Contains(t, out, "explore")
	assert.Contains(t, out, "? help")
}

func TestRenderShowsPromptWhileTyping(t *testing.T) {
	r := NewRenderer(nil)
	out := r.Render(ViewState{Width: 60, Height: 6, BodyHeight: 1, InputActive: true, InputPrompt: "Search artworks: ", InputView: "cat"})
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[1], "Search artworks: ")
	assert.Contains(t, lines[1], "cat")
}

func TestDetailLinesDescriptionFallbacks(t *testing.T) {
	s := NewStyles()
	d := &domain.ArtworkDetail{ID: 3, Title: "Untitled study", Author: "unknown artist", ArtistID: 12}

	out := strings.Join(DetailLines(s, DetailState{
		Detail:     d,
		ShowArtist: true,
		Artist:     &domain.Artist{ID: 12, Title: "Anonymous"},
	}, 60), "\n")
	assert.Contains(t, out, NoArtworkDescription)
	assert.Contains(t, out, NoArtistDescription)
	assert.Contains(t, out, "press w")

	d.Description = "Charcoal on paper."
	out = strings.Join(DetailLines(s, DetailState{Detail: d}, 60), "\n")
	assert.NotContains(t, out, NoArtworkDescription)
	assert.Contains(t, out, "Charcoal on paper.")
}
