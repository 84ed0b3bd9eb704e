package geo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/joshuajeong1/musicmap/internal/state"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := state.InitSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type countingGeocoder struct {
	calls  map[string]int
	coords map[string]Coordinate
}

func (g *countingGeocoder) Geocode(_ context.Context, name string) (Coordinate, error) {
	g.calls[name]++
	c, ok := g.coords[name]
	if !ok {
		return Coordinate{}, ErrNotFound
	}
	return c, nil
}

func newCountingGeocoder() *countingGeocoder {
	return &countingGeocoder{
		calls: map[string]int{},
		coords: map[string]Coordinate{
			"Tempe":  {33.4255, -111.94},
			"Berlin": {52.52, 13.405},
		},
	}
}

func TestCache_HitAvoidsUpstream(t *testing.T) {
	db := setupTestDB(t)
	upstream := newCountingGeocoder()
	cache := NewCache(db, upstream, 30)
	ctx := context.Background()

	for range 3 {
		c, err := cache.Geocode(ctx, "Tempe")
		if err != nil {
			t.Fatalf("Geocode: %v", err)
		}
		if c != upstream.coords["Tempe"] {
			t.Errorf("coord = %+v", c)
		}
	}
	if upstream.calls["Tempe"] != 1 {
		t.Errorf("upstream calls = %d, want 1", upstream.calls["Tempe"])
	}
}

func TestCache_FailuresAreNotCached(t *testing.T) {
	db := setupTestDB(t)
	upstream := newCountingGeocoder()
	cache := NewCache(db, upstream, 30)
	ctx := context.Background()

	for range 2 {
		if _, err := cache.Geocode(ctx, "Atlantis"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	}
	if upstream.calls["Atlantis"] != 2 {
		t.Errorf("upstream calls = %d, want 2", upstream.calls["Atlantis"])
	}
}

func TestCache_ExpiredEntryRefetches(t *testing.T) {
	db := setupTestDB(t)
	upstream := newCountingGeocoder()
	cache := NewCache(db, upstream, 7)
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	if _, err := cache.Geocode(ctx, "Berlin"); err != nil {
		t.Fatalf("Geocode: %v", err)
	}

	now = now.AddDate(0, 0, 6)
	if _, err := cache.Geocode(ctx, "Berlin"); err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if upstream.calls["Berlin"] != 1 {
		t.Errorf("calls within TTL = %d, want 1", upstream.calls["Berlin"])
	}

	now = now.AddDate(0, 0, 2)
	if _, err := cache.Geocode(ctx, "Berlin"); err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if upstream.calls["Berlin"] != 2 {
		t.Errorf("calls after expiry = %d, want 2", upstream.calls["Berlin"])
	}
}
