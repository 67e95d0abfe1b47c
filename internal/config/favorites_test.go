package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempFavoritesPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".cradio", "favorites.json")
}

func fav(uuid, name, url string) FavoriteEntry {
	return FavoriteEntry{UUID: uuid, Name: name, URL: url}
}

func TestLoadFavoritesFrom_MissingFile(t *testing.T) {
	favs, err := LoadFavoritesFrom(tempFavoritesPath(t))
	if err != nil {
		t.Fatalf("LoadFavoritesFrom() error = %v", err)
	}
	if favs.Count() != 0 {
		t.Errorf("Count() = %d, want 0", favs.Count())
	}
}

func TestLoadFavoritesFrom_MalformedFile(t *testing.T) {
	path := tempFavoritesPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("{not-json]"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	favs, err := LoadFavoritesFrom(path)
	if err == nil {
		t.Error("LoadFavoritesFrom() should return error for malformed file")
	}
	// The store must still be usable so the session can continue empty.
	if favs == nil {
		t.Fatal("LoadFavoritesFrom() should return a usable store alongside the error")
	}
	if favs.Count() != 0 {
		t.Errorf("Count() = %d, want 0", favs.Count())
	}
}

func TestLoadFavoritesFrom_DedupesAndDropsBlankUUIDs(t *testing.T) {
	path := tempFavoritesPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	content := `[
		{"stationuuid": "uuid-a", "name": "Old Name", "url": "http://old"},
		{"stationuuid": "", "name": "No ID", "url": "http://none"},
		{"stationuuid": "uuid-a", "name": "New Name", "url": "http://new"},
		{"stationuuid": "uuid-b", "name": "Beta", "url": "http://b"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	favs, err := LoadFavoritesFrom(path)
	if err != nil {
		t.Fatalf("LoadFavoritesFrom() error = %v", err)
	}
	if favs.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", favs.Count())
	}

	var kept FavoriteEntry
	for _, entry := range favs.List() {
		if entry.UUID == "uuid-a" {
			kept = entry
		}
	}
	if kept.Name != "New Name" || kept.URL != "http://new" {
		t.Errorf("duplicate uuid should keep latest entry, got %+v", kept)
	}
}

func TestFavorites_Toggle_Idempotent(t *testing.T) {
	favs, err := LoadFavoritesFrom(tempFavoritesPath(t))
	if err != nil {
		t.Fatalf("LoadFavoritesFrom() error = %v", err)
	}

	entry := fav("uuid-1", "Rock FM", "http://rock/stream")

	added, err := favs.Toggle(entry)
	if err != nil || !added {
		t.Fatalf("Toggle() = (%v, %v), want (true, nil)", added, err)
	}
	if !favs.IsFavorite("uuid-1") {
		t.Error("station should be a favorite after first toggle")
	}

	added, err = favs.Toggle(entry)
	if err != nil || added {
		t.Fatalf("Toggle() = (%v, %v), want (false, nil)", added, err)
	}
	if favs.IsFavorite("uuid-1") {
		t.Error("station should not be a favorite after second toggle")
	}

	// Odd number of toggles flips membership.
	added, err = favs.Toggle(entry)
	if err != nil || !added {
		t.Fatalf("Toggle() = (%v, %v), want (true, nil)", added, err)
	}
	if !favs.IsFavorite("uuid-1") {
		t.Error("station should be a favorite after third toggle")
	}
}

func TestFavorites_Toggle_EmptyUUID(t *testing.T) {
	favs, _ := LoadFavoritesFrom(tempFavoritesPath(t))
	if _, err := favs.Toggle(fav("", "Nameless", "http://x")); err == nil {
		t.Error("Toggle() should return error for empty uuid")
	}
}

func TestFavorites_FlushLoadRoundTrip(t *testing.T) {
	path := tempFavoritesPath(t)
	favs, _ := LoadFavoritesFrom(path)

	entries := []FavoriteEntry{
		fav("uuid-b", "Beta", "https://b"),
		fav("uuid-a", "Alpha", "https://a"),
		fav("uuid-c", "charlie", "https://c"),
	}
	for _, entry := range entries {
		if _, err := favs.Toggle(entry); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
	}
	if err := favs.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	reloaded, err := LoadFavoritesFrom(path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if reloaded.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", reloaded.Count())
	}

	list := reloaded.List()
	// Sorted by lowercased name.
	if list[0].UUID != "uuid-a" || list[1].UUID != "uuid-b" || list[2].UUID != "uuid-c" {
		t.Errorf("List() order = %v", list)
	}
}

func TestFavorites_ToggleFlushReload(t *testing.T) {
	// Empty file, toggle "abc-123" (Jazz FM), flush, reload: the set holds
	// exactly that snapshot.
	path := tempFavoritesPath(t)
	favs, _ := LoadFavoritesFrom(path)

	if _, err := favs.Toggle(fav("abc-123", "Jazz FM", "http://x/stream")); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if err := favs.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	reloaded, err := LoadFavoritesFrom(path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	list := reloaded.List()
	if len(list) != 1 {
		t.Fatalf("len(List()) = %d, want 1", len(list))
	}
	want := fav("abc-123", "Jazz FM", "http://x/stream")
	if list[0] != want {
		t.Errorf("List()[0] = %+v, want %+v", list[0], want)
	}
}

func TestFavorites_FileFormat(t *testing.T) {
	// The on-disk format is a bare JSON array of objects with exactly the
	// keys stationuuid, name and url.
	path := tempFavoritesPath(t)
	favs, _ := LoadFavoritesFrom(path)
	if _, err := favs.Toggle(fav("uuid-1", "Rock FM", "http://rock")); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("file should be a JSON array: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("array length = %d, want 1", len(raw))
	}
	for _, key := range []string{"stationuuid", "name", "url"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("entry missing key %q", key)
		}
	}
	if len(raw[0]) != 3 {
		t.Errorf("entry has %d keys, want 3", len(raw[0]))
	}
}

func TestFavorites_FlushLeavesNoTempFiles(t *testing.T) {
	path := tempFavoritesPath(t)
	favs, _ := LoadFavoritesFrom(path)
	if _, err := favs.Toggle(fav("uuid-1", "Rock FM", "http://rock")); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if err := favs.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".favorites-") {
			t.Errorf("temp file %q left behind", entry.Name())
		}
	}
}

func TestFavorites_UUIDs(t *testing.T) {
	favs, _ := LoadFavoritesFrom(tempFavoritesPath(t))
	favs.Toggle(fav("uuid-b", "Beta", "https://b"))
	favs.Toggle(fav("uuid-a", "Alpha", "https://a"))

	uuids := favs.UUIDs()
	if len(uuids) != 2 || uuids[0] != "uuid-a" || uuids[1] != "uuid-b" {
		t.Errorf("UUIDs() = %v, want [uuid-a uuid-b]", uuids)
	}
}
