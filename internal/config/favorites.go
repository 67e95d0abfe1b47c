package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FavoriteEntry is the minimal durable snapshot of a favorited station.
// Tags, country and language are deliberately not persisted; the directory
// remains the source of truth for everything but identity and the stream.
type FavoriteEntry struct {
	UUID string `json:"stationuuid"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Favorites is the durable favorites set, backed by a single JSON file that
// is read fully at session start and rewritten fully on every mutation.
type Favorites struct {
	mu    sync.Mutex
	path  string
	items map[string]FavoriteEntry
}

// FavoritesPath returns $HOME/.cradio/favorites.json.
func FavoritesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("favorites persistence unavailable: %w", err)
	}
	return filepath.Join(home, ".cradio", "favorites.json"), nil
}

// LoadFavorites reads the favorites file. A missing file is an empty set. A
// malformed file returns a usable empty store alongside the error, so the
// session can surface the problem and keep going.
func LoadFavorites() (*Favorites, error) {
	path, err := FavoritesPath()
	if err != nil {
		return &Favorites{items: map[string]FavoriteEntry{}}, err
	}
	return LoadFavoritesFrom(path)
}

// LoadFavoritesFrom reads a favorites file at an explicit path.
func LoadFavoritesFrom(path string) (*Favorites, error) {
	favs := &Favorites{
		path:  path,
		items: map[string]FavoriteEntry{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return favs, nil
		}
		return favs, fmt.Errorf("read favorites file %s: %w", path, err)
	}

	var entries []FavoriteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return favs, fmt.Errorf("parse favorites file %s: %w", path, err)
	}

	// Duplicate uuids keep the latest occurrence; blank uuids are dropped.
	for _, entry := range entries {
		if strings.TrimSpace(entry.UUID) == "" {
			continue
		}
		favs.items[entry.UUID] = entry
	}

	return favs, nil
}

// Toggle adds the entry if absent and removes it if present, keyed by uuid,
// then rewrites the file. It reports whether the entry is now a favorite.
func (f *Favorites) Toggle(entry FavoriteEntry) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if strings.TrimSpace(entry.UUID) == "" {
		return false, errors.New("station uuid is required")
	}

	if _, ok := f.items[entry.UUID]; ok {
		delete(f.items, entry.UUID)
		return false, f.flushLocked()
	}

	f.items[entry.UUID] = entry
	return true, f.flushLocked()
}

// IsFavorite reports membership by uuid.
func (f *Favorites) IsFavorite(uuid string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[uuid]
	return ok
}

// Count returns the number of favorites.
func (f *Favorites) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// List returns the favorites sorted by lowercased name, then uuid.
func (f *Favorites) List() []FavoriteEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedLocked()
}

// UUIDs returns the favorite uuids in List order.
func (f *Favorites) UUIDs() []string {
	list := f.List()
	uuids := make([]string, len(list))
	for i, entry := range list {
		uuids[i] = entry.UUID
	}
	return uuids
}

// Flush rewrites the on-disk file from the in-memory set. The write goes to
// a temporary file in the same directory which is then renamed into place,
// so an interruption can never leave a truncated favorites file.
func (f *Favorites) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushLocked()
}

// FlushWithRetry flushes, retrying once synchronously on failure. Used at
// quit, where giving up on the first failure would silently drop edits.
func (f *Favorites) FlushWithRetry() error {
	if err := f.Flush(); err != nil {
		return f.Flush()
	}
	return nil
}

func (f *Favorites) flushLocked() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create favorites directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(f.sortedLocked(), "", "  ")
	if err != nil {
		return fmt.Errorf("serialize favorites: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".favorites-*.json")
	if err != nil {
		return fmt.Errorf("write favorites file %s: %w", f.path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write favorites file %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write favorites file %s: %w", f.path, err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace favorites file %s: %w", f.path, err)
	}
	return nil
}

func (f *Favorites) sortedLocked() []FavoriteEntry {
	list := make([]FavoriteEntry, 0, len(f.items))
	for _, entry := range f.items {
		list = append(list, entry)
	}
	sort.Slice(list, func(i, j int) bool {
		ni := strings.ToLower(strings.TrimSpace(list[i].Name))
		nj := strings.ToLower(strings.TrimSpace(list[j].Name))
		if ni == nj {
			return list[i].UUID < list[j].UUID
		}
		return ni < nj
	})
	return list
}
