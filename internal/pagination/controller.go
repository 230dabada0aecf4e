package pagination

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"artgrip/internal/domain"
)

// Options configures a Controller
type Options struct {
	SearchTerm           string
	StartingPage         int   // defaults to 1
	OverrideSourceIDList []int // non-nil switches to id-list mode
	PageLimit            int   // 0 means no limit besides MaxPage
}

// Query returns the query descriptor the options select
func (o Options) Query() Query {
	if o.OverrideSourceIDList != nil {
		return IDListQuery(o.OverrideSourceIDList)
	}
	return SearchQuery(o.SearchTerm)
}

// PageStatus is the load state of a materialized page
type PageStatus int

const (
	PageLoading PageStatus = iota
	PageReady
	PageFailed
)

// PageView is a read-only snapshot of one materialized page
type PageView struct {
	Index   int
	Status  PageStatus
	Records []domain.ArtRecord
	Err     error
}

// FetchRequest asks for one page to be loaded. Hand it to Controller.Load
// off the UI loop and feed the result back through Controller.Apply.
type FetchRequest struct {
	Page  int
	Token uint64
	Query Query
	ctx   context.Context
}

// FetchResult is the outcome of a FetchRequest
type FetchResult struct {
	Page  int
	Token uint64
	Data  domain.Page
	Err   error
}

type slot struct {
	token   uint64
	status  PageStatus
	records []domain.ArtRecord
	err     error
	cancel  context.CancelFunc
}

// Controller owns the page window for one query. Every method except Load
// must be called from the goroutine that owns the controller.
type Controller struct {
	parent    context.Context
	query     Query
	window    *Window
	fetcher   Fetcher
	slots     map[int]*slot
	tokens    uint64
	logger    zerolog.Logger
	onFailure func(page int, err error)
}

// NewController creates a controller positioned on opts.StartingPage.
// Nothing is fetched until Start.
func NewController(ctx context.Context, opts Options, fetcher Fetcher, logger zerolog.Logger) *Controller {
	q := opts.Query()
	return &Controller{
		parent:  ctx,
		query:   q,
		window:  NewWindow(opts.StartingPage, opts.PageLimit),
		fetcher: fetcher,
		slots:   make(map[int]*slot),
		logger:  logger.With().Str("component", "pagination").Str("query", q.String()).Logger(),
	}
}

// OnFailure registers a hook called from Apply for every failed page
func (c *Controller) OnFailure(fn func(page int, err error)) {
	c.onFailure = fn
}

// Query returns the controller's immutable query
func (c *Controller) Query() Query { return c.query }

// Cursor returns the current page index
func (c *Controller) Cursor() int { return c.window.Cursor() }

// StartingPage returns the lower bound of the cursor
func (c *Controller) StartingPage() int { return c.window.Start() }

// AtStart reports whether the cursor sits on the starting page
func (c *Controller) AtStart() bool { return c.window.Cursor() == c.window.Start() }

// Start materializes the initial window and returns its fetches
func (c *Controller) Start() []FetchRequest {
	return c.sync()
}

// OnScroll runs the edge classification for s and moves the window if
// needed. Pages entering the window are returned as fetch requests.
func (c *Controller) OnScroll(s ScrollState) (Transition, []FetchRequest) {
	t := c.window.Handle(s)
	if !t.Moved {
		return t, nil
	}
	c.logger.Debug().
		Int("from", t.From).
		Int("to", t.To).
		Str("direction", t.Direction.String()).
		Float64("offset", t.CorrectiveOffset).
		Msg("window moved")
	return t, c.sync()
}

// sync drops slots that left the window and creates slots for pages that
// entered it
func (c *Controller) sync() []FetchRequest {
	for page, s := range c.slots {
		if !c.window.Contains(page) {
			s.cancel()
			delete(c.slots, page)
		}
	}

	var reqs []FetchRequest
	for _, page := range c.window.Pages() {
		if _, ok := c.slots[page]; ok {
			continue
		}
		reqs = append(reqs, c.arm(page))
	}
	return reqs
}

// arm gives page a fresh slot and returns the request that fills it
func (c *Controller) arm(page int) FetchRequest {
	if old, ok := c.slots[page]; ok {
		old.cancel()
	}
	c.tokens++
	ctx, cancel := context.WithCancel(c.parent)
	c.slots[page] = &slot{token: c.tokens, status: PageLoading, cancel: cancel}
	return FetchRequest{Page: page, Token: c.tokens, Query: c.query, ctx: ctx}
}

// Load performs the fetch for req. It is safe to call from any goroutine.
func (c *Controller) Load(req FetchRequest) (res FetchResult) {
	res = FetchResult{Page: req.Page, Token: req.Token}

	ctx := req.ctx
	if ctx == nil {
		ctx = c.parent
	}

	defer func() {
		if r := recover(); r != nil {
			res.Err = errors.Errorf("fetch page %d panicked: %v", req.Page, r)
		}
	}()

	res.Data, res.Err = c.fetcher.FetchPage(ctx, req.Page, req.Query)
	return res
}

// Apply stores res in its page slot. It returns false when the result is
// stale: the page left the window or was re-requested since.
func (c *Controller) Apply(res FetchResult) bool {
	s, ok := c.slots[res.Page]
	if !ok || s.token != res.Token {
		c.logger.Debug().Int("page", res.Page).Uint64("token", res.Token).Msg("discarding stale page")
		return false
	}

	if res.Err != nil {
		s.status = PageFailed
		s.records = nil
		s.err = res.Err
		if errors.Is(res.Err, context.Canceled) {
			return true
		}
		c.logger.Warn().Err(res.Err).Int("page", res.Page).Msg("page fetch failed")
		if c.onFailure != nil {
			c.onFailure(res.Page, res.Err)
		}
		return true
	}

	s.status = PageReady
	s.err = nil
	s.records = res.Data.Records
	return true
}

// Retry re-requests page if it is in the window and not currently loading
func (c *Controller) Retry(page int) (FetchRequest, bool) {
	s, ok := c.slots[page]
	if !ok || s.status == PageLoading {
		return FetchRequest{}, false
	}
	return c.arm(page), true
}

// RetryFailed re-requests every failed page in the window
func (c *Controller) RetryFailed() []FetchRequest {
	var reqs []FetchRequest
	for _, page := range c.window.Pages() {
		if s, ok := c.slots[page]; ok && s.status == PageFailed {
			reqs = append(reqs, c.arm(page))
		}
	}
	return reqs
}

// Pages returns the materialized pages in display order
func (c *Controller) Pages() []PageView {
	pages := c.window.Pages()
	views := make([]PageView, 0, len(pages))
	for _, page := range pages {
		v := PageView{Index: page, Status: PageLoading}
		if s, ok := c.slots[page]; ok {
			v.Status = s.status
			v.Records = s.records
			v.Err = s.err
		}
		views = append(views, v)
	}
	return views
}

// Close cancels every in-flight fetch
func (c *Controller) Close() {
	for page, s := range c.slots {
		s.cancel()
		delete(c.slots, page)
	}
}
