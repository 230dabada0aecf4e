package pagination

const (
	// PageSize is the number of records per page. Larger pages stall the
	// render loop, so this is a fixed limit rather than an option.
	PageSize = 10

	// MaxPage is the hard ceiling on the cursor
	MaxPage = 1000

	// topNudge is added to the threshold when jumping away from the top edge
	topNudge = 10.0
)

// Direction of a cursor move
type Direction int

const (
	Stay Direction = iota
	Backward
	Forward
)

func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return "stay"
	}
}

// Transition is the outcome of one scroll event. When Moved is false the
// view must not touch the scroll position.
type Transition struct {
	Moved     bool
	Direction Direction
	From      int
	To        int
	// CorrectiveOffset is the non-animated scroll offset the view jumps to
	// after a move. It is not clamped; the view owns the content bounds.
	CorrectiveOffset float64
}

// Window tracks the cursor over the two materialized pages
type Window struct {
	start  int
	limit  int // 0 means no configured limit
	cursor int
}

// NewWindow creates a window positioned on start. Values below 1 are
// raised to 1, and a limit below start is raised to start.
func NewWindow(start, limit int) *Window {
	if start < 1 {
		start = 1
	}
	if start > MaxPage {
		start = MaxPage
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 0 && limit < start {
		limit = start
	}
	if limit > MaxPage {
		limit = MaxPage
	}
	return &Window{start: start, limit: limit, cursor: start}
}

// Cursor returns the current page index
func (w *Window) Cursor() int { return w.cursor }

// Start returns the lower bound of the cursor
func (w *Window) Start() int { return w.start }

// Ceiling returns the upper bound of the cursor
func (w *Window) Ceiling() int {
	if w.limit > 0 {
		return w.limit
	}
	return MaxPage
}

// Pages returns the page indices currently rendered, in display order
func (w *Window) Pages() []int {
	if w.limit > 0 && w.cursor >= w.limit {
		return []int{w.cursor}
	}
	return []int{w.cursor, w.cursor + 1}
}

// Contains reports whether page is part of the rendered window
func (w *Window) Contains(page int) bool {
	for _, p := range w.Pages() {
		if p == page {
			return true
		}
	}
	return false
}

// Retreat moves the cursor back one page. It returns false at the lower bound.
func (w *Window) Retreat() bool {
	if w.cursor <= w.start {
		return false
	}
	w.cursor--
	return true
}

// Advance moves the cursor forward one page. It returns false at the ceiling.
func (w *Window) Advance() bool {
	if w.cursor >= w.Ceiling() {
		return false
	}
	w.cursor++
	return true
}

// Handle classifies s and applies at most one transition. A measurement
// near both edges is a no-op.
func (w *Window) Handle(s ScrollState) Transition {
	edges := Classify(s)
	t := Transition{From: w.cursor, To: w.cursor}

	switch {
	case edges.Both(), edges.None():
		return t

	case edges.NearTop:
		if !w.Retreat() {
			return t
		}
		t.Moved = true
		t.Direction = Backward
		t.CorrectiveOffset = EdgeThreshold + topNudge

	case edges.NearBottom:
		if !w.Advance() {
			return t
		}
		t.Moved = true
		t.Direction = Forward
		// approximates the middle of the departed page; the real page height
		// is not measured
		t.CorrectiveOffset = s.OffsetY/2 - s.ViewportHeight/2 + EdgeThreshold
	}

	t.To = w.cursor
	return t
}
