package pagination

// EdgeThreshold is the distance from either end of the content, in scroll
// units, inside which an edge event fires.
const EdgeThreshold = 10.0

// ScrollState is one scroll measurement supplied by the view
type ScrollState struct {
	OffsetY        float64
	ViewportHeight float64
	ContentHeight  float64
}

// Edges is the edge-proximity classification of a ScrollState.
// Both flags are set when the content is shorter than the viewport.
type Edges struct {
	NearTop    bool
	NearBottom bool
}

// Both reports whether the measurement is near both edges at once
func (e Edges) Both() bool { return e.NearTop && e.NearBottom }

// None reports whether the measurement is away from both edges
func (e Edges) None() bool { return !e.NearTop && !e.NearBottom }

// Classify derives edge proximity from a scroll measurement. It runs on
// every scroll event and does no allocation or I/O.
func Classify(s ScrollState) Edges {
	return Edges{
		NearTop:    s.OffsetY < EdgeThreshold,
		NearBottom: s.ViewportHeight+s.OffsetY > s.ContentHeight-EdgeThreshold,
	}
}
