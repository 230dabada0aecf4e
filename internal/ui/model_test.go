package ui

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artgrip/internal/config"
	"artgrip/internal/domain"
	"artgrip/internal/eventbus"
	"artgrip/internal/pagination"
)

type fetchCall struct {
	page int
	term string
	ids  []int
}

type fakeFetcher struct {
	mu    sync.Mutex
	calls []fetchCall
	fail  map[int]int // page -> remaining failures
}

func (f *fakeFetcher) FetchPage(ctx context.Context, page int, q pagination.Query) (domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fetchCall{page: page, term: q.Term(), ids: q.PageIDs(page)})

	if f.fail[page] > 0 {
		f.fail[page]--
		return domain.Page{Index: page}, errors.New("upstream unavailable")
	}

	var records []domain.ArtRecord
	if q.IsIDList() {
		for _, id := range q.PageIDs(page) {
			records = append(records, domain.ArtRecord{ID: id, Title: "saved", ImageID: "img"})
		}
	} else {
		for i := 0; i < pagination.PageSize; i++ {
			records = append(records, domain.ArtRecord{ID: page*100 + i, Title: q.Term(), ImageID: "img"})
		}
	}
	return domain.Page{Index: page, Records: records}, nil
}

func (f *fakeFetcher) pagesFetched(term string) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pages []int
	for _, c := range f.calls {
		if c.ids == nil && c.term == term {
			pages = append(pages, c.page)
		}
	}
	return pages
}

func (f *fakeFetcher) idCalls() [][]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids [][]int
	for _, c := range f.calls {
		if c.ids != nil {
			ids = append(ids, c.ids)
		}
	}
	return ids
}

type fakeDetails struct{}

func (fakeDetails) Artwork(ctx context.Context, id int) (domain.ArtworkDetail, error) {
	if id < 0 {
		return domain.ArtworkDetail{}, errors.New("not found")
	}
	return domain.ArtworkDetail{ID: id, Title: "Paris Street; Rainy Day", Author: "Gustave Caillebotte", ArtistID: 7}, nil
}

func (fakeDetails) Artist(ctx context.Context, id int) (domain.Artist, error) {
	return domain.Artist{ID: id, Title: "Gustave Caillebotte", BirthDate: "1848", DeathDate: "1894"}, nil
}

type fakePreviews struct{}

func (fakePreviews) PreviewImageID(ctx context.Context, term string) (string, error) {
	return "pv-" + term, nil
}

type fakeFavorites struct {
	mu  sync.Mutex
	ids []int
}

func (f *fakeFavorites) IDs() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.ids...)
}

func (f *fakeFavorites) Contains(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (f *fakeFavorites) Toggle(id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, v := range f.ids {
		if v == id {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			return false, nil
		}
	}
	f.ids = append(f.ids, id)
	return true, nil
}

func (f *fakeFavorites) set(ids ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = ids
}

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }
func (b *recordingBus) Close()                                                     {}

func (b *recordingBus) ofType(t eventbus.EventType) []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.DomainEvent
	for _, e := range b.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

type harness struct {
	m       *Model
	fetcher *fakeFetcher
	favs    *fakeFavorites
	bus     *recordingBus
}

func newHarness(t *testing.T, mutate func(*Deps)) *harness {
	t.Helper()
	h := &harness{
		fetcher: &fakeFetcher{fail: map[int]int{}},
		favs:    &fakeFavorites{},
		bus:     &recordingBus{},
	}
	deps := Deps{
		Config:    config.DefaultConfig(),
		Bus:       h.bus,
		Fetcher:   h.fetcher,
		Details:   fakeDetails{},
		Previews:  fakePreviews{},
		Favorites: h.favs,
		Logger:    zerolog.Nop(),
	}
	if mutate != nil {
		mutate(&deps)
	}
	h.m = NewModel(context.Background(), deps)
	t.Cleanup(h.m.closeAll)
	h.run(h.m.Init())
	return h
}

// run executes cmd and feeds every resulting message back into the model.
// Commands that do not finish promptly (status timers, cursor blink) are
// dropped.
func (h *harness) run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := execute(c).(type) {
		case nil, clearStatusMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := h.m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func execute(c tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- c() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func (h *harness) key(k string) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := h.m.Update(msg)
	h.run(cmd)
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.key(string(r))
	}
}

func TestInitShowsExploreFeed(t *testing.T) {
	h := newHarness(t, nil)

	s, ok := h.m.top().(*ExploreScreen)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, h.fetcher.pagesFetched(""))
	for _, pv := range s.feed.ctrl.Pages() {
		assert.Equal(t, pagination.PageReady, pv.Status)
	}

	out := h.m.View()
	assert.Len(t, strings.Split(out, "\n"), h.m.state.Height)
	assert.Contains(t, out, "Featured artworks")
	assert.Contains(t, out, "▶")
}

func TestUnknownStartScreenFallsBackToExplore(t *testing.T) {
	h := newHarness(t, func(d *Deps) {
		d.Config.UISettings.StartScreen = "gallery"
	})

	assert.Equal(t, screenExplore, h.m.top().Name())
	assert.Equal(t, screenExplore, h.m.state.RootScreen)
}

func TestStartupSearchOpensOnRequestedPage(t *testing.T) {
	h := newHarness(t, func(d *Deps) {
		d.Search = "  monet "
		d.Page = 4
	})

	s, ok := h.m.top().(*SearchScreen)
	require.True(t, ok)
	assert.Equal(t, "monet", s.term)
	assert.Equal(t, 4, s.feed.ctrl.StartingPage())
	assert.Equal(t, []int{4, 5}, h.fetcher.pagesFetched("monet"))
	assert.Len(t, h.m.stack, 2)
}

func TestScrollNearBottomAdvancesWindow(t *testing.T) {
	h := newHarness(t, nil)
	f := feedOf(h.m.top())
	viewport := h.m.state.BodyHeight()

	h.run(h.m.scroll(60))

	assert.Equal(t, 2, f.ctrl.Cursor())
	assert.Equal(t, []int{1, 2, 3}, h.fetcher.pagesFetched(""))

	content := f.ContentHeight(viewport)
	assert.GreaterOrEqual(t, f.Offset(), 0)
	assert.LessOrEqual(t, f.Offset(), content-viewport)
	// header belongs to page 1 and is gone once the cursor leaves it
	assert.NotContains(t, strings.Join(f.Visible(viewport), "\n"), "Featured artworks")
}

func TestScrollNearTopRetreatsAndRefetches(t *testing.T) {
	h := newHarness(t, nil)
	f := feedOf(h.m.top())

	h.run(h.m.scroll(60))
	require.Equal(t, 2, f.ctrl.Cursor())

	h.run(h.m.scroll(-f.Offset()))
	assert.Equal(t, 1, f.ctrl.Cursor())
	// page 1 left the window and is fetched again on return
	assert.Equal(t, []int{1, 2, 3, 1}, h.fetcher.pagesFetched(""))
	assert.LessOrEqual(t, f.Offset(), f.ContentHeight(h.m.state.BodyHeight()))
}

func (h *harness) resize(body int) {
	_, cmd := h.m.Update(tea.WindowSizeMsg{Width: 80, Height: body + 5})
	h.run(cmd)
}

// scrollUntilMoved line-scrolls in direction until the window moves
func (h *harness) scrollUntilMoved(t *testing.T, f *Feed, direction int) {
	t.Helper()
	from := f.ctrl.Cursor()
	for i := 0; i < 300; i++ {
		h.run(h.m.scroll(direction))
		if f.ctrl.Cursor() != from {
			return
		}
	}
	t.Fatalf("window never moved from page %d", from)
}

func TestCorrectiveJumpLeavesTriggerZones(t *testing.T) {
	for _, body := range []int{19, 35, 40, 55} {
		t.Run(strconv.Itoa(body), func(t *testing.T) {
			h := newHarness(t, nil)
			h.resize(body)
			f := feedOf(h.m.top())
			require.Equal(t, body, h.m.state.BodyHeight())

			quiet := func(cursor int) {
				t.Helper()
				threshold := int(pagination.EdgeThreshold)
				assert.Greater(t, f.Offset(), threshold)
				assert.Less(t, f.Offset(), f.ContentHeight(body)-body-threshold)

				h.run(h.m.scroll(1))
				assert.Equal(t, cursor, f.ctrl.Cursor(), "one line down moved the window again")
				h.run(h.m.scroll(-1))
				assert.Equal(t, cursor, f.ctrl.Cursor(), "one line up moved the window again")
			}

			h.scrollUntilMoved(t, f, 1)
			require.Equal(t, 2, f.ctrl.Cursor())
			quiet(2)

			h.scrollUntilMoved(t, f, -1)
			require.Equal(t, 1, f.ctrl.Cursor())
			quiet(1)
		})
	}
}

func TestLineScrollingKeepsAdvancingOnTallTerminal(t *testing.T) {
	h := newHarness(t, nil)
	h.resize(55)
	f := feedOf(h.m.top())

	last := f.ctrl.Cursor()
	for i := 0; i < 400; i++ {
		h.run(h.m.scroll(1))
		require.GreaterOrEqual(t, f.ctrl.Cursor(), last, "step %d went back a page", i)
		last = f.ctrl.Cursor()
	}
	assert.Greater(t, last, 20)

	// every page is fetched once on the way down
	seen := map[int]bool{}
	for _, p := range h.fetcher.pagesFetched("") {
		assert.False(t, seen[p], "page %d fetched twice", p)
		seen[p] = true
	}
}

func TestScrollStaysPutInsideWindow(t *testing.T) {
	h := newHarness(t, nil)
	f := feedOf(h.m.top())

	h.run(h.m.scroll(20))
	assert.Equal(t, 1, f.ctrl.Cursor())
	assert.Equal(t, 20, f.Offset())
}

func TestOpenDetailsAndGoBack(t *testing.T) {
	h := newHarness(t, nil)

	h.key("enter")
	d, ok := h.m.top().(*DetailsScreen)
	require.True(t, ok)
	assert.Equal(t, 100, d.record.ID)
	require.NotNil(t, d.detail)
	assert.Contains(t, h.m.View(), "Gustave Caillebotte")

	h.key("a")
	require.NotNil(t, d.artist)
	assert.Contains(t, h.m.View(), "1848")

	h.key("esc")
	assert.Equal(t, screenExplore, h.m.top().Name())
}

func TestArtistWorksOpensSearchForArtist(t *testing.T) {
	h := newHarness(t, nil)
	h.key("enter")
	h.key("a")

	h.key("w")
	s, ok := h.m.top().(*SearchScreen)
	require.True(t, ok)
	assert.Equal(t, "Gustave Caillebotte", s.term)
	assert.Equal(t, "Works by Gustave Caillebotte", s.title)
	assert.Equal(t, []int{1, 2}, h.fetcher.pagesFetched("Gustave Caillebotte"))

	h.key("esc")
	assert.Equal(t, screenDetails, h.m.top().Name())
}

func TestArtistWorksUsesAuthorBeforeArtistLoads(t *testing.T) {
	h := newHarness(t, nil)
	h.key("enter")

	h.key("w")
	s, ok := h.m.top().(*SearchScreen)
	require.True(t, ok)
	assert.Equal(t, "Gustave Caillebotte", s.term)
}

func TestToggleFavoriteOnFocusedTile(t *testing.T) {
	h := newHarness(t, nil)

	h.key("s")
	assert.Equal(t, []int{100}, h.favs.IDs())
	assert.Contains(t, h.m.state.StatusMessage, "Saved")
	assert.Contains(t, h.m.View(), "★")

	h.key("s")
	assert.Empty(t, h.favs.IDs())
	assert.Contains(t, h.m.state.StatusMessage, "Removed")
}

func TestSearchSubmitOpensResults(t *testing.T) {
	h := newHarness(t, nil)

	h.key("/")
	h.typeText("cat")
	h.key("enter")

	s, ok := h.m.top().(*SearchScreen)
	require.True(t, ok)
	assert.Equal(t, "cat", s.term)
	assert.Equal(t, []int{1, 2}, h.fetcher.pagesFetched("cat"))
	assert.Contains(t, h.m.View(), "Displaying results for: cat")

	// a second search replaces the first instead of stacking
	h.key("/")
	h.typeText("dog")
	h.key("enter")
	assert.Len(t, h.m.stack, 2)
	assert.Equal(t, "dog", h.m.top().(*SearchScreen).term)
}

func TestEmptySearchSubmitKeepsView(t *testing.T) {
	h := newHarness(t, nil)

	h.key("/")
	h.typeText("   ")
	h.key("enter")

	assert.Len(t, h.m.stack, 1)
	assert.Equal(t, screenExplore, h.m.top().Name())
}

func TestFavoritesScreenPagesThroughIDs(t *testing.T) {
	h := newHarness(t, nil)
	ids := make([]int, 12)
	for i := range ids {
		ids[i] = i + 1
	}
	h.favs.set(ids...)

	h.key("3")
	fav, ok := h.m.top().(*FavoritesScreen)
	require.True(t, ok)
	require.NotNil(t, fav.feed)
	assert.Equal(t, [][]int{ids[:10], ids[10:]}, h.fetcher.idCalls())
	assert.Contains(t, h.m.View(), "Saved artworks (12)")

	require.Len(t, h.bus.ofType(eventbus.EventConfigChanged), 1)
	assert.Equal(t, eventbus.ConfigChangedEvent{StartScreen: screenFavorites}, h.bus.ofType(eventbus.EventConfigChanged)[0])
}

func TestFavoritesRefreshOnChange(t *testing.T) {
	h := newHarness(t, nil)
	h.favs.set(5, 6, 7)
	h.key("3")

	h.favs.set(5, 6)
	_, cmd := h.m.Update(EventMsg{Event: eventbus.FavoritesReloadedEvent{IDs: []int{5, 6}}})
	h.run(cmd)

	fav := h.m.top().(*FavoritesScreen)
	assert.Equal(t, []int{5, 6}, fav.ids)
	assert.Contains(t, h.m.View(), "Saved artworks (2)")

	h.favs.set()
	_, cmd = h.m.Update(EventMsg{Event: eventbus.FavoriteRemovedEvent{ArtworkID: 5}})
	h.run(cmd)
	fav = h.m.top().(*FavoritesScreen)
	assert.Nil(t, fav.feed)
	assert.Contains(t, h.m.View(), "No saved artworks")
}

func TestRetryReloadsFailedPage(t *testing.T) {
	h := newHarness(t, func(d *Deps) {
		d.Fetcher.(*fakeFetcher).fail[2] = 1
	})
	f := feedOf(h.m.top())

	pages := f.ctrl.Pages()
	require.Len(t, pages, 2)
	assert.Equal(t, pagination.PageFailed, pages[1].Status)
	assert.Len(t, h.bus.ofType(eventbus.EventPageFetchFailed), 1)

	h.key("r")
	assert.Equal(t, pagination.PageReady, f.ctrl.Pages()[1].Status)
}

func TestCategoriesLoadPreviewsAndOpenSearch(t *testing.T) {
	h := newHarness(t, nil)

	h.key("2")
	c, ok := h.m.top().(*CategoriesScreen)
	require.True(t, ok)
	assert.Empty(t, c.pending)
	for _, cat := range c.categories {
		assert.Equal(t, "pv-"+cat.SearchTerm, cat.PreviewID)
	}

	h.key("j")
	h.key("enter")
	s, ok := h.m.top().(*SearchScreen)
	require.True(t, ok)
	assert.Equal(t, c.categories[1].SearchTerm, s.term)
	assert.Equal(t, c.categories[1].DisplayName, s.title)

	h.key("esc")
	assert.Same(t, c, h.m.top())
}

func TestTabCyclesRootScreens(t *testing.T) {
	h := newHarness(t, nil)

	h.key("tab")
	assert.Equal(t, screenCategories, h.m.state.RootScreen)
	h.key("tab")
	assert.Equal(t, screenFavorites, h.m.state.RootScreen)
	h.key("tab")
	assert.Equal(t, screenExplore, h.m.state.RootScreen)
}

func TestStaleResultIsIgnored(t *testing.T) {
	h := newHarness(t, nil)
	f := feedOf(h.m.top())

	h.run(func() tea.Msg {
		return pageLoadedMsg{feed: f, res: pagination.FetchResult{Page: 1, Token: 999, Err: errors.New("late")}}
	})
	assert.Equal(t, pagination.PageReady, f.ctrl.Pages()[0].Status)
}
