package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

var listenBucket = []byte("history")

// Entry is one listening-history record.
type Entry struct {
	UUID     string    `json:"stationuuid"`
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	PlayedAt time.Time `json:"playedAt"`
}

// Store is the listening history, keyed by play time so a reverse cursor
// yields most-recent-first. Re-listening to a station moves its single entry
// to the front rather than duplicating it.
type Store struct {
	db *bbolt.DB
}

// DefaultPath returns ~/.config/cradio/history.db.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "cradio")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Open opens (or creates) the history database.
func Open(path string) (*Store, error) {
	options := &bbolt.Options{Timeout: 1 * time.Second}
	db, err := bbolt.Open(path, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(listenBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create history bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Record adds an entry, replacing any earlier entry for the same station.
func (s *Store) Record(entry Entry) error {
	if strings.TrimSpace(entry.UUID) == "" {
		return errors.New("station uuid is required")
	}
	if entry.PlayedAt.IsZero() {
		entry.PlayedAt = time.Now()
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(listenBucket)

		if err := deleteByUUID(b, entry.UUID); err != nil {
			return err
		}

		value, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("serialize history entry: %w", err)
		}
		return b.Put(key(entry.PlayedAt, entry.UUID), value)
	})
}

// Recent returns up to limit entries, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	var entries []Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(listenBucket).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("deserialize history entry: %w", err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(t time.Time, uuid string) []byte {
	return []byte(fmt.Sprintf("%s:%s", t.UTC().Format(time.RFC3339Nano), uuid))
}

func deleteByUUID(b *bbolt.Bucket, uuid string) error {
	suffix := []byte(":" + uuid)
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		if bytes.HasSuffix(k, suffix) {
			return c.Delete()
		}
	}
	return nil
}
