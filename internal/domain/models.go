package domain

// Thumbnail carries the upstream thumbnail dimensions. Either value may be
// nil when the catalog does not know it.
type Thumbnail struct {
	Width  *int
	Height *int
}

// AspectRatio returns height/width, or false when either side is unknown
func (t Thumbnail) AspectRatio() (float64, bool) {
	if t.Width == nil || t.Height == nil || *t.Width == 0 || *t.Height == 0 {
		return 0, false
	}
	return float64(*t.Height) / float64(*t.Width), true
}

// ArtRecord is the normalized artwork shape used by list views
type ArtRecord struct {
	ID        int
	Title     string
	ImageID   string // empty when the record has no image
	Thumbnail Thumbnail
}

// HasImage reports whether the record carries visual content
func (r ArtRecord) HasImage() bool {
	return r.ImageID != ""
}

// Page is one fetched batch of records for a single page index
type Page struct {
	Index   int
	Records []ArtRecord
}

// Visible returns the records that should be rendered
func (p Page) Visible() []ArtRecord {
	visible := make([]ArtRecord, 0, len(p.Records))
	for _, r := range p.Records {
		if r.HasImage() {
			visible = append(visible, r)
		}
	}
	return visible
}

// ArtworkDetail is the full record shown on the detail screen
type ArtworkDetail struct {
	ID            int
	Title         string
	ImageID       string
	Thumbnail     Thumbnail
	Description   string
	Author        string
	PlaceOfOrigin string
	Date          string
	ArtworkType   string // medium: canvas, sculpture, etc.
	Dimensions    string
	ArtistID      int // 0 when unknown
}

// Artist is an agent record from the catalog
type Artist struct {
	ID          int
	Title       string
	Description string
	BirthDate   string
	DeathDate   string
}

// Category is a fixed browse entry backed by a search term
type Category struct {
	DisplayName string
	SearchTerm  string
	PreviewID   string // image id of the first matching artwork, filled lazily
}

// DefaultCategories returns the built-in browse categories
func DefaultCategories() []Category {
	return []Category{
		{DisplayName: "Animals", SearchTerm: "animals"},
		{DisplayName: "Cats", SearchTerm: "cat"},
		{DisplayName: "Sculptures", SearchTerm: "sculpture"},
		{DisplayName: "Baroque", SearchTerm: "baroque"},
		{DisplayName: "Water", SearchTerm: "water"},
		{DisplayName: "Impressionism", SearchTerm: "impressionism"},
	}
}
