package artic

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"artgrip/internal/domain"
)

type rawThumbnail struct {
	Width   *int    `json:"width"`
	Height  *int    `json:"height"`
	AltText *string `json:"alt_text"`
}

type rawItem struct {
	ID        int           `json:"id"`
	Title     *string       `json:"title"`
	ImageID   *string       `json:"image_id"`
	Thumbnail *rawThumbnail `json:"thumbnail"`
}

type listResponse struct {
	Data []rawItem `json:"data"`
}

func (r listResponse) records() []domain.ArtRecord {
	out := make([]domain.ArtRecord, 0, len(r.Data))
	for _, item := range r.Data {
		out = append(out, item.record())
	}
	return out
}

func (it rawItem) record() domain.ArtRecord {
	return domain.ArtRecord{
		ID:        it.ID,
		Title:     deref(it.Title),
		ImageID:   deref(it.ImageID),
		Thumbnail: thumbnail(it.Thumbnail),
	}
}

func thumbnail(t *rawThumbnail) domain.Thumbnail {
	if t == nil {
		return domain.Thumbnail{}
	}
	return domain.Thumbnail{Width: t.Width, Height: t.Height}
}

type rawArtwork struct {
	rawItem
	Description   *string `json:"description"`
	ArtistTitle   *string `json:"artist_title"`
	ArtistDisplay *string `json:"artist_display"`
	PlaceOfOrigin *string `json:"place_of_origin"`
	DateDisplay   *string `json:"date_display"`
	MediumDisplay *string `json:"medium_display"`
	Dimensions    *string `json:"dimensions"`
	ArtistID      *int    `json:"artist_id"`
}

func (a rawArtwork) detail() domain.ArtworkDetail {
	d := domain.ArtworkDetail{
		ID:            a.ID,
		Title:         deref(a.Title),
		ImageID:       deref(a.ImageID),
		Thumbnail:     thumbnail(a.Thumbnail),
		Description:   StripTags(deref(a.Description)),
		Author:        firstNonEmpty(deref(a.ArtistTitle), deref(a.ArtistDisplay), "unknown artist"),
		PlaceOfOrigin: firstNonEmpty(deref(a.PlaceOfOrigin), "unknown place of origin"),
		Date:          firstNonEmpty(deref(a.DateDisplay), "unknown year of creation"),
		ArtworkType:   deref(a.MediumDisplay),
		Dimensions:    deref(a.Dimensions),
	}
	if d.Description == "" && a.Thumbnail != nil {
		d.Description = StripTags(deref(a.Thumbnail.AltText))
	}
	if a.ArtistID != nil {
		d.ArtistID = *a.ArtistID
	}
	return d
}

type rawAgent struct {
	ID          int        `json:"id"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	BirthDate   flexString `json:"birth_date"`
	DeathDate   flexString `json:"death_date"`
}

func (a rawAgent) artist() domain.Artist {
	return domain.Artist{
		ID:          a.ID,
		Title:       deref(a.Title),
		Description: StripTags(deref(a.Description)),
		BirthDate:   string(a.BirthDate),
		DeathDate:   string(a.DeathDate),
	}
}

// flexString accepts a JSON string, number or null
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*f = flexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = flexString(n.String())
	return nil
}

// StripTags returns the text content of an HTML fragment with runs of
// whitespace collapsed
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return strings.Join(strings.Fields(b.String()), " ")
			}
			return strings.Join(strings.Fields(s), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
