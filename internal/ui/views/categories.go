package views

import "artgrip/internal/domain"

// CategoryHeight is the number of lines one category entry occupies
const CategoryHeight = 3

// CategoryLines renders the browse list. previewURL maps a preview image id
// to a link; loading reports whether a category's preview is still pending.
func CategoryLines(s *Styles, cats []domain.Category, selected int, previewURL func(string) string, loading func(int) bool) []string {
	lines := make([]string, 0, len(cats)*CategoryHeight)
	for i, c := range cats {
		name := "  " + s.TileTitle.Render(c.DisplayName)
		if i == selected {
			name = "▶ " + s.Focused.Render(c.DisplayName)
		}

		var preview string
		switch {
		case c.PreviewID != "":
			preview = s.Link.Render(previewURL(c.PreviewID))
		case loading(i):
			preview = s.StatusLoading.Render("loading preview…")
		default:
			preview = s.Dim.Render("no preview")
		}

		lines = append(lines, name, "  "+preview, "")
	}
	return lines
}
