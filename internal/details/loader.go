// Package details loads single artwork and artist records with caching.
package details

import (
	"context"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"artgrip/internal/domain"
)

// DefaultCacheSize bounds each cache
const DefaultCacheSize = 128

// Catalog is the subset of the catalog client the loader uses
type Catalog interface {
	Artwork(ctx context.Context, id int) (domain.ArtworkDetail, error)
	Agent(ctx context.Context, id int) (domain.Artist, error)
}

// Loader fetches detail records once and serves repeats from memory
type Loader struct {
	catalog  Catalog
	artworks *lru.Cache[int, domain.ArtworkDetail]
	artists  *lru.Cache[int, domain.Artist]
	group    singleflight.Group
	logger   zerolog.Logger
}

// NewLoader creates a loader with caches of the given size
func NewLoader(catalog Catalog, size int, logger zerolog.Logger) (*Loader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	artworks, err := lru.New[int, domain.ArtworkDetail](size)
	if err != nil {
		return nil, errors.Wrap(err, "artwork cache")
	}
	artists, err := lru.New[int, domain.Artist](size)
	if err != nil {
		return nil, errors.Wrap(err, "artist cache")
	}
	return &Loader{
		catalog:  catalog,
		artworks: artworks,
		artists:  artists,
		logger:   logger.With().Str("component", "details").Logger(),
	}, nil
}

// Artwork returns the detail record for id
func (l *Loader) Artwork(ctx context.Context, id int) (domain.ArtworkDetail, error) {
	if d, ok := l.artworks.Get(id); ok {
		return d, nil
	}

	v, err, shared := l.group.Do("artwork:"+strconv.Itoa(id), func() (interface{}, error) {
		d, err := l.catalog.Artwork(ctx, id)
		if err != nil {
			return nil, err
		}
		l.artworks.Add(id, d)
		return d, nil
	})
	if err != nil {
		return domain.ArtworkDetail{}, err
	}
	l.logger.Debug().Int("id", id).Bool("shared", shared).Msg("artwork loaded")
	return v.(domain.ArtworkDetail), nil
}

// Artist returns the agent record for id
func (l *Loader) Artist(ctx context.Context, id int) (domain.Artist, error) {
	if id <= 0 {
		return domain.Artist{}, errors.New("artwork has no artist")
	}
	if a, ok := l.artists.Get(id); ok {
		return a, nil
	}

	v, err, shared := l.group.Do("artist:"+strconv.Itoa(id), func() (interface{}, error) {
		a, err := l.catalog.Agent(ctx, id)
		if err != nil {
			return nil, err
		}
		l.artists.Add(id, a)
		return a, nil
	})
	if err != nil {
		return domain.Artist{}, err
	}
	l.logger.Debug().Int("id", id).Bool("shared", shared).Msg("artist loaded")
	return v.(domain.Artist), nil
}

// Cached reports whether the artwork is already in memory
func (l *Loader) Cached(id int) bool {
	return l.artworks.Contains(id)
}
