package pagination

import (
	"strconv"
	"strings"
)

// Query selects what a controller pages through: a free-text term or a
// fixed, ordered list of artwork ids. A Query is immutable once built.
type Query struct {
	term   string
	ids    []int
	idMode bool
}

// SearchQuery builds a free-text query. The term may be empty.
func SearchQuery(term string) Query {
	return Query{term: term}
}

// IDListQuery builds an id-list query. The list is copied.
func IDListQuery(ids []int) Query {
	cp := make([]int, len(ids))
	copy(cp, ids)
	return Query{ids: cp, idMode: true}
}

// IsIDList reports whether the query pages through an explicit id list
func (q Query) IsIDList() bool { return q.idMode }

// Term returns the free-text term ("" in id-list mode)
func (q Query) Term() string { return q.term }

// IDs returns a copy of the id list
func (q Query) IDs() []int {
	cp := make([]int, len(q.ids))
	copy(cp, q.ids)
	return cp
}

// Len returns the number of ids in id-list mode
func (q Query) Len() int { return len(q.ids) }

// PageIDs returns ids[(page-1)*PageSize : page*PageSize] clipped to the list
func (q Query) PageIDs(page int) []int {
	if page < 1 {
		return nil
	}
	start := (page - 1) * PageSize
	end := page * PageSize
	if start >= len(q.ids) {
		return nil
	}
	if end > len(q.ids) {
		end = len(q.ids)
	}
	out := make([]int, end-start)
	copy(out, q.ids[start:end])
	return out
}

// String renders the query for logs
func (q Query) String() string {
	if !q.idMode {
		return "term:" + strconv.Quote(q.term)
	}
	parts := make([]string, len(q.ids))
	for i, id := range q.ids {
		parts[i] = strconv.Itoa(id)
	}
	return "ids:[" + strings.Join(parts, ",") + "]"
}
