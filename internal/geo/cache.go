package geo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("geo")

// Cache is a Geocoder that remembers successful lookups in sqlite.
// Failures are not cached so the next build asks the upstream geocoder again.
type Cache struct {
	db       *sql.DB
	upstream Geocoder
	ttlDays  int
	now      func() time.Time
}

// NewCache wraps upstream with a sqlite cache whose entries expire after
// ttlDays.
func NewCache(db *sql.DB, upstream Geocoder, ttlDays int) *Cache {
	return &Cache{
		db:       db,
		upstream: upstream,
		ttlDays:  ttlDays,
		now:      time.Now,
	}
}

// isExpired checks if a cached entry is expired.
func (c *Cache) isExpired(fetchedAt int64) bool {
	expiry := c.now().AddDate(0, 0, -c.ttlDays).Unix()
	return fetchedAt < expiry
}

// Geocode returns the cached coordinate for name, or asks upstream.
func (c *Cache) Geocode(ctx context.Context, name string) (Coordinate, error) {
	coord, ok, err := c.lookup(ctx, name)
	if err != nil {
		log.Warnw("geocode cache read failed", "name", name, "error", err)
	}
	if ok {
		return coord, nil
	}

	coord, err = c.upstream.Geocode(ctx, name)
	if err != nil {
		return Coordinate{}, err
	}

	if err := c.store(ctx, name, coord); err != nil {
		log.Warnw("geocode cache write failed", "name", name, "error", err)
	}
	return coord, nil
}

func (c *Cache) lookup(ctx context.Context, name string) (Coordinate, bool, error) {
	var coord Coordinate
	var fetchedAt int64
	err := c.db.QueryRowContext(ctx, `
		SELECT lat, lon, fetched_at FROM geocode_cache WHERE name = ?
	`, name).Scan(&coord.Lat, &coord.Lon, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Coordinate{}, false, nil
	}
	if err != nil {
		return Coordinate{}, false, err
	}
	if c.isExpired(fetchedAt) {
		return Coordinate{}, false, nil
	}
	return coord, true, nil
}

func (c *Cache) store(ctx context.Context, name string, coord Coordinate) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (name, lat, lon, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			lat = excluded.lat,
			lon = excluded.lon,
			fetched_at = excluded.fetched_at
	`, name, coord.Lat, coord.Lon, c.now().Unix())
	return err
}
