package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFavoriteAdded     EventType = "FavoriteAdded"
	EventFavoriteRemoved   EventType = "FavoriteRemoved"
	EventFavoritesReloaded EventType = "FavoritesReloaded"
	EventPageFetchFailed   EventType = "PageFetchFailed"
	EventModeChanged       EventType = "ModeChanged"
	EventConfigChanged     EventType = "ConfigChanged"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FavoriteAddedEvent is emitted when an artwork is saved
type FavoriteAddedEvent struct {
	ArtworkID int
}

func (e FavoriteAddedEvent) Type() EventType { return EventFavoriteAdded }

// FavoriteRemovedEvent is emitted when an artwork is unsaved
type FavoriteRemovedEvent struct {
	ArtworkID int
}

func (e FavoriteRemovedEvent) Type() EventType { return EventFavoriteRemoved }

// FavoritesReloadedEvent is emitted when the favorites file changed on disk
type FavoritesReloadedEvent struct {
	IDs []int
}

func (e FavoritesReloadedEvent) Type() EventType { return EventFavoritesReloaded }

// PageFetchFailedEvent is emitted when a page could not be loaded
type PageFetchFailedEvent struct {
	Page  int
	Query string
	Err   error
}

func (e PageFetchFailedEvent) Type() EventType { return EventPageFetchFailed }

// ModeChangedEvent is emitted when the active screen changes
type ModeChangedEvent struct {
	From string
	To   string
}

func (e ModeChangedEvent) Type() EventType { return EventModeChanged }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	StartScreen string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
