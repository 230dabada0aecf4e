package pagination

import (
	"context"

	"github.com/pkg/errors"

	"artgrip/internal/domain"
)

// Fetcher retrieves exactly one page of records
type Fetcher interface {
	FetchPage(ctx context.Context, page int, q Query) (domain.Page, error)
}

// Source is the catalog surface a CatalogFetcher needs
type Source interface {
	SearchArtworks(ctx context.Context, term string, page, limit int) ([]domain.ArtRecord, error)
	ArtworksByIDs(ctx context.Context, ids []int) ([]domain.ArtRecord, error)
}

// CatalogFetcher pages through the catalog in PageSize batches
type CatalogFetcher struct {
	source Source
}

// NewCatalogFetcher creates a fetcher over source
func NewCatalogFetcher(source Source) *CatalogFetcher {
	return &CatalogFetcher{source: source}
}

// FetchPage issues a single request for page under q
func (f *CatalogFetcher) FetchPage(ctx context.Context, page int, q Query) (domain.Page, error) {
	if page < 1 {
		return domain.Page{}, errors.Errorf("page index %d out of range", page)
	}

	if !q.IsIDList() {
		records, err := f.source.SearchArtworks(ctx, q.Term(), page, PageSize)
		if err != nil {
			return domain.Page{Index: page}, errors.Wrapf(err, "search page %d", page)
		}
		return domain.Page{Index: page, Records: records}, nil
	}

	ids := q.PageIDs(page)
	if len(ids) == 0 {
		return domain.Page{Index: page, Records: []domain.ArtRecord{}}, nil
	}

	records, err := f.source.ArtworksByIDs(ctx, ids)
	if err != nil {
		return domain.Page{Index: page}, errors.Wrapf(err, "id page %d", page)
	}
	return domain.Page{Index: page, Records: inRequestedOrder(records, ids)}, nil
}

// inRequestedOrder sorts records to follow ids. The batch endpoint does not
// promise to keep request order. Records that were not asked for go last.
func inRequestedOrder(records []domain.ArtRecord, ids []int) []domain.ArtRecord {
	byID := make(map[int]domain.ArtRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	out := make([]domain.ArtRecord, 0, len(records))
	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
		if r, ok := byID[id]; ok {
			out = append(out, r)
			delete(byID, id)
		}
	}
	for _, r := range records {
		if _, left := byID[r.ID]; left && !wanted[r.ID] {
			out = append(out, r)
			delete(byID, r.ID)
		}
	}
	return out
}
