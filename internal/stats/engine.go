package stats

import "github.com/joshuajeong1/musicmap/internal/listens"

// Snapshotter provides the current listen records.
type Snapshotter interface {
	All() []listens.Record
}

// Summary groups the statistics shown for a location (or all locations).
type Summary struct {
	Location    string         `json:"location"`
	TopTrack    listens.Record `json:"topTrack"`
	TopArtist   ArtistPlays    `json:"topArtist"`
	TopLocation *LocationPlays `json:"topLocation,omitempty"` // only for AllLocations
	TotalPlays  int64          `json:"totalPlays"`
}

// Summarize computes every statistic for location from one set of records.
func Summarize(records []listens.Record, location string) Summary {
	s := Summary{
		Location:   location,
		TopTrack:   TopTrack(records, location),
		TopArtist:  TopArtist(records, location),
		TotalPlays: TotalPlays(records, location),
	}
	if location == AllLocations {
		top := TopLocation(records)
		s.TopLocation = &top
	}
	return s
}

// Engine answers statistics queries against a fresh snapshot on every call.
type Engine struct {
	source Snapshotter
}

// NewEngine creates an Engine reading from source.
func NewEngine(source Snapshotter) *Engine {
	return &Engine{source: source}
}

func (e *Engine) TopTrack(location string) listens.Record {
	return TopTrack(e.source.All(), location)
}

func (e *Engine) TopArtist(location string) ArtistPlays {
	return TopArtist(e.source.All(), location)
}

func (e *Engine) TopLocation() LocationPlays {
	return TopLocation(e.source.All())
}

func (e *Engine) Summary(location string) Summary {
	return Summarize(e.source.All(), location)
}
