package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"artgrip/internal/artic"
	"artgrip/internal/config"
	"artgrip/internal/domain"
	"artgrip/internal/eventbus"
	"artgrip/internal/pagination"
	"artgrip/internal/ui/input"
	inputtypes "artgrip/internal/ui/input/types"
	"artgrip/internal/ui/state"
	"artgrip/internal/ui/views"
)

const (
	tileImageWidth    = artic.TileImageWidth
	detailImageWidth  = artic.DetailImageWidth
	previewImageWidth = artic.PreviewImageWidth

	statusTimeout = 4 * time.Second
	wheelLines    = 3
)

// DetailSource loads single records for the details screen
type DetailSource interface {
	Artwork(ctx context.Context, id int) (domain.ArtworkDetail, error)
	Artist(ctx context.Context, id int) (domain.Artist, error)
}

// PreviewSource finds a preview image for a category term
type PreviewSource interface {
	PreviewImageID(ctx context.Context, term string) (string, error)
}

// FavoriteStore is the saved-artwork list
type FavoriteStore interface {
	IDs() []int
	Contains(id int) bool
	Toggle(id int) (bool, error)
}

// ImageLinker builds image URLs
type ImageLinker interface {
	ImageURL(imageID string, width int) string
}

// Deps are the services the model drives
type Deps struct {
	Config    *config.Config
	Bus       eventbus.EventBus
	Fetcher   pagination.Fetcher
	Details   DetailSource
	Previews  PreviewSource
	Favorites FavoriteStore
	Images    ImageLinker
	Logger    zerolog.Logger

	// Search opens a search screen on start. Page is its starting page.
	Search string
	Page   int
}

// Model represents the UI state
type Model struct {
	ctx    context.Context
	deps   Deps
	state  *state.AppState
	logger zerolog.Logger

	stack    []Screen
	previews map[string]string // category term -> preview image id

	rc           *renderContext
	renderer     *views.Renderer
	help         help.Model
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Config == nil {
		deps.Config = config.DefaultConfig()
	}
	styles := views.NewStyles()

	m := &Model{
		ctx:          ctx,
		deps:         deps,
		state:        state.NewAppState(deps.Config.UISettings.StartScreen),
		logger:       deps.Logger.With().Str("component", "ui").Logger(),
		previews:     make(map[string]string),
		renderer:     views.NewRenderer(styles),
		help:         help.New(),
		inputHandler: input.New(),
		helpRenderer: NewHelpRenderer(),
	}
	m.rc = &renderContext{
		styles:   styles,
		width:    m.state.Width,
		showURLs: deps.Config.UISettings.ShowImageURLs,
		saved:    m.isSaved,
	}
	if deps.Images != nil {
		m.rc.imageURL = deps.Images.ImageURL
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Init builds the first screen and starts its fetches
func (m *Model) Init() tea.Cmd {
	root, cmd := m.screenFor(m.state.RootScreen)
	m.stack = []Screen{root}
	m.state.RootScreen = root.Name()

	if term := strings.TrimSpace(m.deps.Search); term != "" {
		m.state.SearchTerm = term
		return tea.Batch(cmd, m.push(m.newSearchScreen(term, "", m.deps.Page)))
	}
	return cmd
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.rc.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.scroll(-wheelLines)
		case tea.MouseButtonWheelDown:
			return m, m.scroll(wheelLines)
		}
		return m, nil

	default:
		inputCmd := m.inputHandler.Update(msg)
		_, cmd := m.handleNonKeyboardMsg(msg)
		return m, tea.Batch(inputCmd, cmd)
	}
}

// handleNonKeyboardMsg processes async results and bus events
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		msg.feed.ctrl.Apply(msg.res)
		return m, nil

	case detailLoadedMsg:
		if d, ok := m.top().(*DetailsScreen); ok && d.record.ID == msg.id {
			if msg.err != nil {
				d.err = msg.err
				d.detail = nil
				return m, m.setStatus(fmt.Sprintf("Couldn't load artwork %d", msg.id), true)
			}
			d.err = nil
			detail := msg.detail
			d.detail = &detail
		}
		return m, nil

	case artistLoadedMsg:
		if d, ok := m.top().(*DetailsScreen); ok && d.record.ID == msg.artworkID {
			d.loadingArtist = false
			if msg.err != nil {
				d.artistErr = msg.err
				return m, nil
			}
			artist := msg.artist
			d.artist = &artist
			d.artistErr = nil
		}
		return m, nil

	case previewLoadedMsg:
		if msg.err != nil {
			m.logger.Debug().Err(msg.err).Str("term", msg.term).Msg("preview failed")
		} else if msg.imageID != "" {
			m.previews[msg.term] = msg.imageID
		}
		for _, s := range m.stack {
			if c, ok := s.(*CategoriesScreen); ok {
				delete(c.pending, msg.term)
				m.fillPreviews(c)
			}
		}
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case clearStatusMsg:
		m.state.ClearStatus(msg.seq)
		return m, nil

	case pagerDoneMsg:
		m.state.InPagerMode = false
		if msg.err != nil {
			return m, m.setStatus("Pager: "+msg.err.Error(), true)
		}
		return m, nil
	}
	return m, nil
}

// handleEvent reacts to domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.FavoriteAddedEvent, eventbus.FavoriteRemovedEvent, eventbus.FavoritesReloadedEvent:
		return m.refreshFavorites()

	case eventbus.PageFetchFailedEvent:
		return m.setStatus(fmt.Sprintf("Couldn't load page %d. Press r to retry.", e.Page), true)

	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	}
	return nil
}

// View renders the UI
func (m *Model) View() string {
	if m.state.InPagerMode {
		return ""
	}
	if len(m.stack) == 0 {
		return "Loading..."
	}

	body := m.state.BodyHeight()
	vs := views.ViewState{
		Width:         m.state.Width,
		Height:        m.state.Height,
		ActiveTab:     m.state.RootScreen,
		BodyHeight:    body,
		StatusMessage: m.state.StatusMessage,
		StatusIsError: m.state.StatusIsError,
		HelpView:      m.help.ShortHelpView(m.inputHandler.Keys().ShortHelp(m.top().Name())),
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.InputActive = true
		vs.InputPrompt = m.inputHandler.Prompt()
		vs.InputView = ti.View()
	}

	switch s := m.top().(type) {
	case *ExploreScreen:
		vs.ScreenTitle = "Explore"
		vs.ScrollInfo = pageInfo(s.feed)
		vs.Body = s.feed.Visible(body)
	case *SearchScreen:
		vs.ScreenTitle = "Search"
		if s.title != "" {
			vs.ScreenTitle = s.title
		}
		vs.ScrollInfo = pageInfo(s.feed)
		vs.Body = s.feed.Visible(body)
	case *FavoritesScreen:
		vs.ScreenTitle = "Favorites"
		if s.feed == nil {
			vs.Body = []string{m.rc.styles.Dim.Render("No saved artworks yet. Press s on any artwork to save it.")}
		} else {
			vs.ScrollInfo = pageInfo(s.feed)
			vs.Body = s.feed.Visible(body)
		}
	case *CategoriesScreen:
		vs.ScreenTitle = "Categories"
		vs.Body = m.categoryBody(s, body)
	case *DetailsScreen:
		vs.ScreenTitle = "Artwork"
		vs.ScrollInfo = fmt.Sprintf("#%d", s.record.ID)
		vs.Body = m.detailBody(s, body)
	}

	return m.renderer.Render(vs)
}

func pageInfo(f *Feed) string {
	return fmt.Sprintf("page %d", f.ctrl.Cursor())
}

func (m *Model) categoryBody(s *CategoriesScreen, body int) []string {
	lines := views.CategoryLines(m.rc.styles, s.categories, s.selected, m.previewURL, func(i int) bool {
		return s.pending[s.categories[i].SearchTerm]
	})
	// keep the selected entry on screen
	offset := 0
	if bottom := (s.selected + 1) * views.CategoryHeight; bottom > body {
		offset = bottom - body
	}
	return window(lines, offset, body)
}

func (m *Model) detailBody(s *DetailsScreen, body int) []string {
	lines := views.DetailLines(m.rc.styles, m.detailState(s), m.state.Width)
	s.offset = clampOffset(s.offset, len(lines), body)
	return window(lines, s.offset, body)
}

func (m *Model) detailState(s *DetailsScreen) views.DetailState {
	st := views.DetailState{
		Record:        s.record,
		Detail:        s.detail,
		Err:           s.err,
		Saved:         m.isSaved(s.record.ID),
		ShowArtist:    s.showArtist,
		Artist:        s.artist,
		ArtistErr:     s.artistErr,
		LoadingArtist: s.loadingArtist,
	}
	imageID := s.record.ImageID
	if s.detail != nil && s.detail.ImageID != "" {
		imageID = s.detail.ImageID
	}
	if m.rc.showURLs && m.rc.imageURL != nil {
		st.ImageURL = m.rc.imageURL(imageID, detailImageWidth)
	}
	return st
}

func window(lines []string, offset, height int) []string {
	if offset > len(lines) {
		offset = len(lines)
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[offset:end]
}

func (m *Model) previewURL(imageID string) string {
	if m.rc.imageURL == nil {
		return imageID
	}
	return m.rc.imageURL(imageID, previewImageWidth)
}

func (m *Model) isSaved(id int) bool {
	if m.deps.Favorites == nil {
		return false
	}
	return m.deps.Favorites.Contains(id)
}

// top returns the visible screen
func (m *Model) top() Screen {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// inputContext exposes screen state to the input handler
func (m *Model) inputContext() inputtypes.Context {
	return &modelContext{m: m}
}

type modelContext struct {
	m *Model
}

func (c *modelContext) ScreenName() string {
	if s := c.m.top(); s != nil {
		return s.Name()
	}
	return ""
}

func (c *modelContext) HasFocus() bool {
	_, ok := c.m.focusedRecord()
	return ok
}

func (c *modelContext) OnDetails() bool {
	_, ok := c.m.top().(*DetailsScreen)
	return ok
}

func (c *modelContext) CanGoBack() bool {
	return len(c.m.stack) > 1
}

// focusedRecord returns the artwork actions apply to. Categories count as
// focusable so enter can open them.
func (m *Model) focusedRecord() (domain.ArtRecord, bool) {
	switch s := m.top().(type) {
	case *DetailsScreen:
		return s.record, true
	case *CategoriesScreen:
		return domain.ArtRecord{}, len(s.categories) > 0
	}
	if f := feedOf(m.top()); f != nil {
		return f.Focused(m.state.BodyHeight())
	}
	return domain.ArtRecord{}, false
}

// setStatus shows msg and schedules its removal
func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	seq := m.state.SetStatus(msg, isError)
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.deps.Bus != nil {
		m.deps.Bus.Publish(event)
	}
}

// closeAll cancels every feed on the stack
func (m *Model) closeAll() {
	for _, s := range m.stack {
		if f := feedOf(s); f != nil {
			f.Close()
		}
	}
}
