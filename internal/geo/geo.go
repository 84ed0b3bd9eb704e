// Package geo turns location names into coordinates and computes map regions.
package geo

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a geocoder has no result for a query.
var ErrNotFound = errors.New("location not found")

// regionPadding is added to each span so every point lies strictly inside.
const regionPadding = 0.2

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Span is the height and width of a region in degrees.
type Span struct {
	LatDelta float64 `json:"latDelta"`
	LonDelta float64 `json:"lonDelta"`
}

// Region is a rectangular map area.
type Region struct {
	Center Coordinate `json:"center"`
	Span   Span       `json:"span"`
}

// Geocoder resolves a place name to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, name string) (Coordinate, error)
}

// Reverser resolves a coordinate to a city name.
type Reverser interface {
	ReverseGeocode(ctx context.Context, c Coordinate) (string, error)
}

// BoundingRegion returns the smallest padded region containing coords. The
// center is the midpoint of the latitude and longitude extremes. With no
// coordinates the region is centered on fallback.
func BoundingRegion(coords []Coordinate, fallback Coordinate) Region {
	if len(coords) == 0 {
		return Region{
			Center: fallback,
			Span:   Span{LatDelta: regionPadding, LonDelta: regionPadding},
		}
	}

	minLat, maxLat := coords[0].Lat, coords[0].Lat
	minLon, maxLon := coords[0].Lon, coords[0].Lon
	for _, c := range coords[1:] {
		minLat = min(minLat, c.Lat)
		maxLat = max(maxLat, c.Lat)
		minLon = min(minLon, c.Lon)
		maxLon = max(maxLon, c.Lon)
	}

	return Region{
		Center: Coordinate{
			Lat: (minLat + maxLat) / 2,
			Lon: (minLon + maxLon) / 2,
		},
		Span: Span{
			LatDelta: maxLat - minLat + regionPadding,
			LonDelta: maxLon - minLon + regionPadding,
		},
	}
}

// Contains reports whether c lies strictly inside the region.
func (r Region) Contains(c Coordinate) bool {
	halfLat := r.Span.LatDelta / 2
	halfLon := r.Span.LonDelta / 2
	return c.Lat > r.Center.Lat-halfLat && c.Lat < r.Center.Lat+halfLat &&
		c.Lon > r.Center.Lon-halfLon && c.Lon < r.Center.Lon+halfLon
}
