// Package listens stores cumulative play counts per (track title, location).
//
// The sqlite table is the source of truth. An in-memory mirror serves reads
// and is only updated after the corresponding transaction commits, so a failed
// write never leaves memory ahead of disk.
package listens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	dbutil "github.com/joshuajeong1/musicmap/internal/db"
)

var (
	// ErrEmptyTitle is returned when upserting a record without a title.
	ErrEmptyTitle = errors.New("empty track title")
	// ErrInvalidDelta is returned for non-positive play count increments.
	ErrInvalidDelta = errors.New("play count delta must be positive")
	// ErrReservedLocation is returned when upserting at ReservedLocation.
	ErrReservedLocation = errors.New("location name is reserved")
)

// ReservedLocation is the query value meaning "every location". It is never
// stored as a location.
const ReservedLocation = "unsorted"

// Record is the cumulative play count of one track at one location.
// An empty Location means the location was unknown.
type Record struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	AlbumArtURL string `json:"albumArtUrl"`
	Location    string `json:"location"`
	PlayCount   int64  `json:"playCount"`
}

// Snapshot is a consistent copy of the store contents.
type Snapshot struct {
	Records   []Record
	Locations []string // distinct non-empty locations, first-seen order
}

type key struct {
	title    string
	location string
}

// Store is the durable listen table.
type Store struct {
	db  *sql.DB
	now func() time.Time

	mu        sync.RWMutex
	records   []Record
	index     map[key]int
	locations []string
	known     map[string]struct{}
}

// Open loads the existing listen history from db.
func Open(ctx context.Context, db *sql.DB) (*Store, error) {
	s := &Store{
		db:  db,
		now: time.Now,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, artist, album_art_url, location, play_count
		FROM listens
		ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("load listens: %w", err)
	}
	defer rows.Close()

	var records []Record
	index := make(map[key]int)
	for rows.Next() {
		var r Record
		var art sql.NullString
		if err := rows.Scan(&r.Title, &r.Artist, &art, &r.Location, &r.PlayCount); err != nil {
			return fmt.Errorf("scan listen: %w", err)
		}
		r.AlbumArtURL = dbutil.NullStringValue(art)
		index[key{r.Title, r.Location}] = len(records)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load listens: %w", err)
	}

	locRows, err := s.db.QueryContext(ctx, `SELECT name FROM locations ORDER BY id`)
	if err != nil {
		return fmt.Errorf("load locations: %w", err)
	}
	defer locRows.Close()

	var locations []string
	known := make(map[string]struct{})
	for locRows.Next() {
		var name string
		if err := locRows.Scan(&name); err != nil {
			return fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, name)
		known[name] = struct{}{}
	}
	if err := locRows.Err(); err != nil {
		return fmt.Errorf("load locations: %w", err)
	}

	s.mu.Lock()
	s.records = records
	s.index = index
	s.locations = locations
	s.known = known
	s.mu.Unlock()
	return nil
}

// Upsert adds delta plays of title at location. The first call for a
// (title, location) pair creates the record and fixes its artist and album
// art; later calls only increment the count.
func (s *Store) Upsert(ctx context.Context, title, artist, albumArtURL, location string, delta int64) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if delta < 1 {
		return ErrInvalidDelta
	}
	if location == ReservedLocation {
		return ErrReservedLocation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{title, location}
	_, exists := s.index[k]
	_, knownLocation := s.known[location]
	newLocation := location != "" && !knownLocation
	now := s.now().Unix()

	err := dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO listens (title, artist, album_art_url, location, play_count, first_played_at, last_played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(title, location) DO UPDATE SET
				play_count = play_count + excluded.play_count,
				last_played_at = excluded.last_played_at
		`, title, artist, dbutil.NullString(albumArtURL), location, delta, now, now)
		if err != nil {
			return err
		}
		if newLocation {
			_, err = tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO locations (name, first_seen_at) VALUES (?, ?)
			`, location, now)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert listen: %w", err)
	}

	if exists {
		s.records[s.index[k]].PlayCount += delta
	} else {
		s.index[k] = len(s.records)
		s.records = append(s.records, Record{
			Title:       title,
			Artist:      artist,
			AlbumArtURL: albumArtURL,
			Location:    location,
			PlayCount:   delta,
		})
	}
	if newLocation {
		s.locations = append(s.locations, location)
		s.known[location] = struct{}{}
	}
	return nil
}

// Clear deletes every record and location.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM listens`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM locations`)
		return err
	})
	if err != nil {
		return fmt.Errorf("clear listens: %w", err)
	}

	s.records = nil
	s.index = make(map[key]int)
	s.locations = nil
	s.known = make(map[string]struct{})
	return nil
}

// All returns a copy of every record in creation order.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record(nil), s.records...)
}

// Locations returns the distinct non-empty locations in first-seen order.
func (s *Store) Locations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.locations...)
}

// Snapshot returns records and locations read under the same lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Records:   append([]Record(nil), s.records...),
		Locations: append([]string(nil), s.locations...),
	}
}

// TotalPlays returns the sum of all play counts. Counts only grow, so the
// total changes with every successful Upsert until the next Clear.
func (s Snapshot) TotalPlays() int64 {
	var total int64
	for _, r := range s.Records {
		total += r.PlayCount
	}
	return total
}

// Count returns the number of records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
