package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"artgrip/internal/domain"
	"artgrip/internal/eventbus"
	"artgrip/internal/pagination"
	inputtypes "artgrip/internal/ui/input/types"
	"artgrip/internal/ui/views"
)

// processAction executes one input action
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.ScrollAction:
		return m.scroll(a.Lines)

	case inputtypes.PageAction:
		half := m.state.BodyHeight() / 2
		if half < 1 {
			half = 1
		}
		if a.Direction == "up" {
			half = -half
		}
		return m.scroll(half)

	case inputtypes.SwitchScreenAction:
		return m.setRoot(a.Screen)

	case inputtypes.NextScreenAction:
		return m.setRoot(nextTab(m.state.RootScreen))

	case inputtypes.OpenAction:
		return m.open()

	case inputtypes.BackAction:
		return m.pop()

	case inputtypes.ToggleFavoriteAction:
		return m.toggleFavorite()

	case inputtypes.RetryAction:
		return m.retry()

	case inputtypes.ToggleArtistAction:
		return m.toggleArtist()

	case inputtypes.ArtistWorksAction:
		return m.openArtistWorks()

	case inputtypes.OpenPagerAction:
		return m.openDescription()

	case inputtypes.ToggleHelpAction:
		return m.showPager(m.helpRenderer.RenderHelpContentPlain())

	case inputtypes.SubmitTextAction:
		return m.submitSearch(a.Text)

	case inputtypes.CancelTextAction, inputtypes.UpdateTextAction:
		return nil

	case inputtypes.QuitAction:
		m.closeAll()
		return tea.Quit
	}
	return nil
}

// scroll moves the visible screen by delta lines
func (m *Model) scroll(delta int) tea.Cmd {
	switch s := m.top().(type) {
	case *CategoriesScreen:
		s.move(delta)
		return nil
	case *DetailsScreen:
		s.offset += delta
		if s.offset < 0 {
			s.offset = 0
		}
		return nil
	}

	f := feedOf(m.top())
	if f == nil {
		return nil
	}
	tr, reqs := f.Scroll(delta, m.state.BodyHeight())
	if tr.Moved {
		m.logger.Debug().Int("from", tr.From).Int("to", tr.To).Msg("page window moved")
	}
	return m.fetch(f, reqs)
}

// fetch turns fetch requests into commands that report back to f
func (m *Model) fetch(f *Feed, reqs []pagination.FetchRequest) tea.Cmd {
	if len(reqs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, func() tea.Msg {
			return pageLoadedMsg{feed: f, res: f.ctrl.Load(req)}
		})
	}
	return tea.Batch(cmds...)
}

// newFeedFor builds a feed for opts. Nothing is fetched until startFeed.
func (m *Model) newFeedFor(opts pagination.Options, header []string) *Feed {
	ctrl := pagination.NewController(m.ctx, opts, m.deps.Fetcher, m.deps.Logger)
	query := ctrl.Query().String()
	ctrl.OnFailure(func(page int, err error) {
		m.publish(eventbus.PageFetchFailedEvent{Page: page, Query: query, Err: err})
	})
	return newFeed(ctrl, header, m.rc)
}

// startFeed materializes the feed's window. Calling it twice is harmless.
func (m *Model) startFeed(f *Feed) tea.Cmd {
	return m.fetch(f, f.ctrl.Start())
}

// screenFor builds a root screen. Unknown names fall back to explore.
func (m *Model) screenFor(name string) (Screen, tea.Cmd) {
	switch name {
	case screenCategories:
		return m.newCategoriesScreen()
	case screenFavorites:
		return m.newFavoritesScreen(1)
	default:
		s := &ExploreScreen{}
		s.feed = m.newFeedFor(pagination.Options{}, []string{
			m.rc.styles.Header.Render("Featured artworks"),
			m.rc.styles.Dim.Render("Public domain works from the Art Institute of Chicago"),
			"",
		})
		return s, m.startFeed(s.feed)
	}
}

func (m *Model) newSearchScreen(term, title string, startingPage int) *SearchScreen {
	s := &SearchScreen{term: term, title: title}
	s.feed = m.newFeedFor(pagination.Options{SearchTerm: term, StartingPage: startingPage}, []string{
		m.rc.styles.Header.Render("Displaying results for: " + term),
		"",
	})
	return s
}

func (m *Model) newFavoritesScreen(startingPage int) (Screen, tea.Cmd) {
	s := &FavoritesScreen{}
	if m.deps.Favorites != nil {
		s.ids = m.deps.Favorites.IDs()
	}
	if len(s.ids) == 0 {
		return s, nil
	}

	limit := favoritesPageLimit(len(s.ids))
	if startingPage > limit {
		startingPage = limit
	}
	s.feed = m.newFeedFor(pagination.Options{
		OverrideSourceIDList: s.ids,
		StartingPage:         startingPage,
		PageLimit:            limit,
	}, []string{
		m.rc.styles.Header.Render(fmt.Sprintf("Saved artworks (%d)", len(s.ids))),
		"",
	})
	return s, m.startFeed(s.feed)
}

func (m *Model) newCategoriesScreen() (Screen, tea.Cmd) {
	s := &CategoriesScreen{
		categories: domain.DefaultCategories(),
		pending:    make(map[string]bool),
	}
	m.fillPreviews(s)

	var cmds []tea.Cmd
	if m.deps.Previews != nil {
		for _, c := range s.categories {
			if c.PreviewID != "" {
				continue
			}
			term := c.SearchTerm
			s.pending[term] = true
			cmds = append(cmds, func() tea.Msg {
				id, err := m.deps.Previews.PreviewImageID(m.ctx, term)
				return previewLoadedMsg{term: term, imageID: id, err: err}
			})
		}
	}
	return s, tea.Batch(cmds...)
}

func (m *Model) fillPreviews(s *CategoriesScreen) {
	for i := range s.categories {
		if id, ok := m.previews[s.categories[i].SearchTerm]; ok {
			s.categories[i].PreviewID = id
		}
	}
}

// setRoot replaces the whole stack with the named root screen
func (m *Model) setRoot(name string) tea.Cmd {
	from := m.state.RootScreen
	m.closeAll()

	root, cmd := m.screenFor(name)
	m.stack = []Screen{root}
	m.state.RootScreen = root.Name()

	if from != root.Name() {
		m.publish(eventbus.ModeChangedEvent{From: from, To: root.Name()})
		m.publish(eventbus.ConfigChangedEvent{StartScreen: root.Name()})
	}
	return cmd
}

// push shows s on top of the current screen
func (m *Model) push(s Screen) tea.Cmd {
	from := ""
	if top := m.top(); top != nil {
		from = top.Name()
	}
	m.stack = append(m.stack, s)
	m.publish(eventbus.ModeChangedEvent{From: from, To: s.Name()})

	if f := feedOf(s); f != nil {
		return m.startFeed(f)
	}
	return nil
}

// pop returns to the previous screen
func (m *Model) pop() tea.Cmd {
	if len(m.stack) < 2 {
		return nil
	}
	top := m.top()
	if f := feedOf(top); f != nil {
		f.Close()
	}
	m.stack = m.stack[:len(m.stack)-1]
	m.publish(eventbus.ModeChangedEvent{From: top.Name(), To: m.top().Name()})
	return nil
}

// open shows the focused artwork or category
func (m *Model) open() tea.Cmd {
	if c, ok := m.top().(*CategoriesScreen); ok {
		cat := c.categories[c.selected]
		return m.push(m.newSearchScreen(cat.SearchTerm, cat.DisplayName, 1))
	}

	rec, ok := m.focusedRecord()
	if !ok {
		return nil
	}
	d := &DetailsScreen{record: rec}
	m.state.DisplayedArtID = rec.ID
	return tea.Batch(m.push(d), m.loadDetail(rec.ID))
}

func (m *Model) loadDetail(id int) tea.Cmd {
	if m.deps.Details == nil {
		return nil
	}
	return func() tea.Msg {
		d, err := m.deps.Details.Artwork(m.ctx, id)
		return detailLoadedMsg{id: id, detail: d, err: err}
	}
}

func (m *Model) toggleArtist() tea.Cmd {
	d, ok := m.top().(*DetailsScreen)
	if !ok {
		return nil
	}
	if d.detail == nil || d.detail.ArtistID == 0 {
		return m.setStatus("No artist on record for this artwork", true)
	}

	d.showArtist = !d.showArtist
	if !d.showArtist || d.artist != nil || d.loadingArtist || m.deps.Details == nil {
		return nil
	}

	d.loadingArtist = true
	d.artistErr = nil
	artworkID, artistID := d.record.ID, d.detail.ArtistID
	return func() tea.Msg {
		a, err := m.deps.Details.Artist(m.ctx, artistID)
		return artistLoadedMsg{artworkID: artworkID, artist: a, err: err}
	}
}

// openArtistWorks searches the catalog for the artist of the artwork on
// screen
func (m *Model) openArtistWorks() tea.Cmd {
	d, ok := m.top().(*DetailsScreen)
	if !ok || d.detail == nil {
		return nil
	}

	name := ""
	switch {
	case d.artist != nil:
		name = d.artist.Title
	case d.detail.ArtistID != 0:
		name = d.detail.Author
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return m.setStatus("No artist on record for this artwork", true)
	}
	return m.push(m.newSearchScreen(name, "Works by "+name, 1))
}

func (m *Model) openDescription() tea.Cmd {
	d, ok := m.top().(*DetailsScreen)
	if !ok || d.detail == nil {
		return nil
	}
	st := m.detailState(d)
	st.ShowArtist = d.artist != nil
	lines := views.DetailLines(m.rc.styles, st, 80)
	return m.showPager(strings.Join(lines, "\n"))
}

// toggleFavorite saves or unsaves the focused artwork
func (m *Model) toggleFavorite() tea.Cmd {
	if m.deps.Favorites == nil {
		return nil
	}
	if _, ok := m.top().(*CategoriesScreen); ok {
		return nil
	}
	rec, ok := m.focusedRecord()
	if !ok {
		return nil
	}

	saved, err := m.deps.Favorites.Toggle(rec.ID)
	if err != nil {
		m.logger.Error().Err(err).Int("id", rec.ID).Msg("toggle favorite")
		m.publish(eventbus.ErrorEvent{Message: "Couldn't update favorites", Err: err})
		return m.setStatus("Couldn't update favorites: "+err.Error(), true)
	}

	title := rec.Title
	if d, ok := m.top().(*DetailsScreen); ok && d.detail != nil {
		title = d.detail.Title
	}
	if title == "" {
		title = "Untitled"
	}
	if saved {
		return m.setStatus("Saved "+title, false)
	}
	return m.setStatus("Removed "+title, false)
}

// refreshFavorites rebuilds the favorites feed when the saved list changed
func (m *Model) refreshFavorites() tea.Cmd {
	if len(m.stack) == 0 {
		return nil
	}
	fav, ok := m.stack[0].(*FavoritesScreen)
	if !ok || m.deps.Favorites == nil {
		return nil
	}
	ids := m.deps.Favorites.IDs()
	if equalInts(ids, fav.ids) {
		return nil
	}

	startingPage := 1
	if fav.feed != nil {
		startingPage = fav.feed.ctrl.Cursor()
		fav.feed.Close()
	}
	next, cmd := m.newFavoritesScreen(startingPage)
	m.stack[0] = next
	return cmd
}

// retry reloads whatever failed on the visible screen
func (m *Model) retry() tea.Cmd {
	if d, ok := m.top().(*DetailsScreen); ok {
		if d.err == nil {
			return nil
		}
		d.err = nil
		return m.loadDetail(d.record.ID)
	}

	f := feedOf(m.top())
	if f == nil {
		return nil
	}
	reqs := f.ctrl.RetryFailed()
	if len(reqs) == 0 {
		return nil
	}
	return tea.Batch(m.setStatus(fmt.Sprintf("Retrying %d page(s)", len(reqs)), false), m.fetch(f, reqs))
}

// submitSearch opens results for text. Empty input leaves the current
// screen untouched.
func (m *Model) submitSearch(text string) tea.Cmd {
	term := strings.TrimSpace(text)
	if term == "" {
		return nil
	}
	m.state.SearchTerm = term

	s := m.newSearchScreen(term, "", 1)
	if cur, ok := m.top().(*SearchScreen); ok && cur.title == "" {
		cur.feed.Close()
		m.stack[len(m.stack)-1] = s
		return m.startFeed(s.feed)
	}
	return m.push(s)
}

func nextTab(current string) string {
	for i, t := range views.Tabs {
		if t.Name == current {
			return views.Tabs[(i+1)%len(views.Tabs)].Name
		}
	}
	return views.Tabs[0].Name
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
