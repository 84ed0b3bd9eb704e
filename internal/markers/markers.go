// Package markers builds map markers for the locations the user listened in.
package markers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"

	"github.com/joshuajeong1/musicmap/internal/geo"
	"github.com/joshuajeong1/musicmap/internal/listens"
	"github.com/joshuajeong1/musicmap/internal/stats"
)

var log = logging.Logger("markers")

// LabelMode selects what a marker is labeled with.
type LabelMode int

const (
	ByTrack LabelMode = iota
	ByArtist
)

func (m LabelMode) String() string {
	if m == ByArtist {
		return "artist"
	}
	return "track"
}

// Toggle returns the other label mode.
func (m LabelMode) Toggle() LabelMode {
	if m == ByArtist {
		return ByTrack
	}
	return ByArtist
}

// ParseLabelMode parses "track" or "artist". Empty means track.
func ParseLabelMode(s string) (LabelMode, error) {
	switch s {
	case "", "track":
		return ByTrack, nil
	case "artist":
		return ByArtist, nil
	default:
		return ByTrack, fmt.Errorf("unknown label mode %q", s)
	}
}

// Marker is one pin on the map.
type Marker struct {
	ID         uuid.UUID      `json:"id"`
	Location   string         `json:"location"`
	Label      string         `json:"label"`
	Coordinate geo.Coordinate `json:"coordinate"`
}

// MapView is everything needed to draw the map.
type MapView struct {
	Mode    string     `json:"mode"`
	Markers []Marker   `json:"markers"`
	Region  geo.Region `json:"region"`
}

// Snapshotter provides a consistent view of records and locations.
type Snapshotter interface {
	Snapshot() listens.Snapshot
}

// Builder geocodes every known location and labels it with the top track or
// artist there. Results are rebuilt on every call.
type Builder struct {
	source   Snapshotter
	geocoder geo.Geocoder
	fallback geo.Coordinate
}

// NewBuilder creates a Builder. fallback centers the map when no marker
// could be placed.
func NewBuilder(source Snapshotter, geocoder geo.Geocoder, fallback geo.Coordinate) *Builder {
	return &Builder{
		source:   source,
		geocoder: geocoder,
		fallback: fallback,
	}
}

// markerNamespace derives stable marker IDs from location names.
var markerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/joshuajeong1/musicmap/markers"))

// Build returns one marker per geocodable location, in the order the
// locations were first seen. Locations that fail to geocode are skipped.
func (b *Builder) Build(ctx context.Context, mode LabelMode) []Marker {
	snap := b.source.Snapshot()

	markers := make([]Marker, 0, len(snap.Locations))
	for _, loc := range snap.Locations {
		if ctx.Err() != nil {
			break
		}

		coord, err := b.geocoder.Geocode(ctx, loc)
		if err != nil {
			log.Warnw("geocode failed, skipping location", "location", loc, "error", err)
			continue
		}

		markers = append(markers, Marker{
			ID:         uuid.NewSHA1(markerNamespace, []byte(loc)),
			Location:   loc,
			Label:      label(snap.Records, loc, mode),
			Coordinate: coord,
		})
	}
	return markers
}

// Map builds the markers and the region that frames them.
func (b *Builder) Map(ctx context.Context, mode LabelMode) MapView {
	markers := b.Build(ctx, mode)

	coords := make([]geo.Coordinate, len(markers))
	for i, m := range markers {
		coords[i] = m.Coordinate
	}

	return MapView{
		Mode:    mode.String(),
		Markers: markers,
		Region:  geo.BoundingRegion(coords, b.fallback),
	}
}

func label(records []listens.Record, location string, mode LabelMode) string {
	if mode == ByArtist {
		return stats.TopArtist(records, location).Artist
	}
	return stats.TopTrack(records, location).Title
}
