// Package favorites persists the list of saved artwork ids.
package favorites

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"artgrip/internal/eventbus"
)

// FileName is the favorites file inside the data directory
const FileName = "savedArtworks.json"

const defaultDebounce = 200 * time.Millisecond

// Store holds the saved ids in insertion order and mirrors them to disk
type Store struct {
	path     string
	mu       sync.RWMutex
	ids      []int
	bus      eventbus.EventBus
	logger   zerolog.Logger
	debounce time.Duration
}

// NewStore creates a store backed by dataDir/savedArtworks.json. bus may be nil.
func NewStore(dataDir string, bus eventbus.EventBus, logger zerolog.Logger) *Store {
	return &Store{
		path:     filepath.Join(dataDir, FileName),
		bus:      bus,
		logger:   logger.With().Str("component", "favorites").Logger(),
		debounce: defaultDebounce,
	}
}

// Path returns the backing file
func (s *Store) Path() string { return s.path }

// Load reads the file, creating it with an empty list if it does not exist
func (s *Store) Load() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, "create data directory")
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if err := writeIDs(s.path, []int{}); err != nil {
			return err
		}
	}

	ids, err := readIDs(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()

	s.logger.Debug().Int("count", len(ids)).Str("path", s.path).Msg("favorites loaded")
	return nil
}

// IDs returns a copy of the saved ids
func (s *Store) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of saved ids
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Contains reports whether id is saved
func (s *Store) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.ids, id) >= 0
}

// Add appends id. It returns false if id was already saved.
func (s *Store) Add(id int) (bool, error) {
	s.mu.Lock()
	if indexOf(s.ids, id) >= 0 {
		s.mu.Unlock()
		return false, nil
	}
	next := append(append([]int{}, s.ids...), id)
	if err := writeIDs(s.path, next); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.ids = next
	s.mu.Unlock()

	s.publish(eventbus.FavoriteAddedEvent{ArtworkID: id})
	return true, nil
}

// Remove drops id. It returns false if id was not saved.
func (s *Store) Remove(id int) (bool, error) {
	s.mu.Lock()
	i := indexOf(s.ids, id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	next := make([]int, 0, len(s.ids)-1)
	next = append(next, s.ids[:i]...)
	next = append(next, s.ids[i+1:]...)
	if err := writeIDs(s.path, next); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.ids = next
	s.mu.Unlock()

	s.publish(eventbus.FavoriteRemovedEvent{ArtworkID: id})
	return true, nil
}

// Toggle saves id if absent and removes it otherwise. It returns whether id
// is saved afterwards.
func (s *Store) Toggle(id int) (bool, error) {
	if s.Contains(id) {
		_, err := s.Remove(id)
		return false, err
	}
	_, err := s.Add(id)
	return err == nil, err
}

// Watch reloads the list whenever another process rewrites the file and
// publishes FavoritesReloaded when the contents changed. It blocks until ctx
// is done.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	defer watcher.Close()

	// watch the directory so editors that replace the file are still seen
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return errors.Wrap(err, "watch data directory")
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.debounce, s.reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn().Err(err).Msg("favorites watcher error")
		}
	}
}

func (s *Store) reload() {
	ids, err := readIDs(s.path)
	if err != nil {
		s.logger.Warn().Err(err).Msg("favorites reload failed")
		return
	}

	s.mu.Lock()
	if equalIDs(s.ids, ids) {
		s.mu.Unlock()
		return
	}
	s.ids = ids
	s.mu.Unlock()

	s.logger.Info().Int("count", len(ids)).Msg("favorites changed on disk")
	out := make([]int, len(ids))
	copy(out, ids)
	s.publish(eventbus.FavoritesReloadedEvent{IDs: out})
}

func (s *Store) publish(event eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}

func readIDs(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read favorites")
	}
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, errors.Wrapf(err, "parse %s", filepath.Base(path))
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// writeIDs replaces the file atomically
func writeIDs(path string, ids []int) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return errors.Wrap(err, "encode favorites")
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".favorites-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "write favorites")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "write favorites")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "replace favorites")
	}
	return nil
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
