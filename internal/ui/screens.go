package ui

import (
	"artgrip/internal/domain"
	"artgrip/internal/pagination"
)

// Screen names
const (
	screenExplore    = "explore"
	screenCategories = "categories"
	screenFavorites  = "favorites"
	screenSearch     = "search"
	screenDetails    = "details"
)

// Screen is one entry of the navigation stack
type Screen interface {
	Name() string
}

// feedScreen is a screen that shows an infinite list
type feedScreen interface {
	Screen
	Feed() *Feed
}

// ExploreScreen shows the featured feed
type ExploreScreen struct {
	feed *Feed
}

func (s *ExploreScreen) Name() string { return screenExplore }
func (s *ExploreScreen) Feed() *Feed  { return s.feed }

// SearchScreen shows results for one term
type SearchScreen struct {
	term  string
	title string // category name when opened from the categories screen
	feed  *Feed
}

func (s *SearchScreen) Name() string { return screenSearch }
func (s *SearchScreen) Feed() *Feed  { return s.feed }

// FavoritesScreen shows saved artworks. feed is nil when nothing is saved.
type FavoritesScreen struct {
	ids  []int
	feed *Feed
}

func (s *FavoritesScreen) Name() string { return screenFavorites }
func (s *FavoritesScreen) Feed() *Feed  { return s.feed }

// CategoriesScreen lists the fixed browse categories
type CategoriesScreen struct {
	categories []domain.Category
	selected   int
	pending    map[string]bool // terms whose preview is loading
}

func (s *CategoriesScreen) Name() string { return screenCategories }

func (s *CategoriesScreen) move(delta int) {
	s.selected += delta
	if s.selected < 0 {
		s.selected = 0
	}
	if s.selected >= len(s.categories) {
		s.selected = len(s.categories) - 1
	}
}

// DetailsScreen shows one artwork
type DetailsScreen struct {
	record        domain.ArtRecord
	detail        *domain.ArtworkDetail
	err           error
	showArtist    bool
	artist        *domain.Artist
	artistErr     error
	loadingArtist bool
	offset        int
}

func (s *DetailsScreen) Name() string { return screenDetails }

// favoritesPageLimit is the number of pages needed for n saved ids
func favoritesPageLimit(n int) int {
	limit := (n + pagination.PageSize - 1) / pagination.PageSize
	if limit < 1 {
		limit = 1
	}
	return limit
}

func feedOf(s Screen) *Feed {
	if fs, ok := s.(feedScreen); ok {
		return fs.Feed()
	}
	return nil
}
