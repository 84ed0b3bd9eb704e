// Package stats derives listening statistics from listen records.
//
// All queries group records and pick the largest summed play count. Ties go
// to the lexicographically smallest key so repeated calls on the same data
// always agree.
package stats

import (
	"github.com/joshuajeong1/musicmap/internal/listens"
)

// AllLocations is the location filter that disables location filtering.
const AllLocations = listens.ReservedLocation

// ArtistPlays is an artist with its summed play count.
type ArtistPlays struct {
	Artist   string `json:"artist"`
	Plays    int64  `json:"plays"`
	ImageURL string `json:"imageUrl,omitempty"` // filled in by callers with an image lookup
}

// LocationPlays is a location with its summed play count.
type LocationPlays struct {
	Location string `json:"location"`
	Plays    int64  `json:"plays"`
}

// TopTrack returns the most played title at location, summing plays of the
// same title across locations when location is AllLocations. Artist and album
// art come from the first record carrying the winning title. The zero Record
// is returned when nothing matches.
func TopTrack(records []listens.Record, location string) listens.Record {
	filtered := filter(records, location)

	counts := make(map[string]int64)
	first := make(map[string]listens.Record)
	for _, r := range filtered {
		counts[r.Title] += r.PlayCount
		if _, ok := first[r.Title]; !ok {
			first[r.Title] = r
		}
	}

	title, plays, ok := maxByCount(counts)
	if !ok {
		return listens.Record{}
	}

	top := first[title]
	result := listens.Record{
		Title:       title,
		Artist:      top.Artist,
		AlbumArtURL: top.AlbumArtURL,
		PlayCount:   plays,
	}
	if location != AllLocations {
		result.Location = location
	}
	return result
}

// TopArtist returns the artist with the most plays at location.
func TopArtist(records []listens.Record, location string) ArtistPlays {
	counts := make(map[string]int64)
	for _, r := range filter(records, location) {
		counts[r.Artist] += r.PlayCount
	}
	artist, plays, _ := maxByCount(counts)
	return ArtistPlays{Artist: artist, Plays: plays}
}

// TopLocation returns the location with the most plays. Records with an
// unknown (empty) location form their own group.
func TopLocation(records []listens.Record) LocationPlays {
	counts := make(map[string]int64)
	for _, r := range records {
		counts[r.Location] += r.PlayCount
	}
	location, plays, _ := maxByCount(counts)
	return LocationPlays{Location: location, Plays: plays}
}

// TotalPlays sums play counts at location.
func TotalPlays(records []listens.Record, location string) int64 {
	var total int64
	for _, r := range filter(records, location) {
		total += r.PlayCount
	}
	return total
}

func filter(records []listens.Record, location string) []listens.Record {
	if location == AllLocations {
		return records
	}
	var out []listens.Record
	for _, r := range records {
		if r.Location == location {
			out = append(out, r)
		}
	}
	return out
}

// maxByCount returns the key with the largest count, preferring the smallest
// key on ties. ok is false for an empty map.
func maxByCount(counts map[string]int64) (best string, bestCount int64, ok bool) {
	for k, c := range counts {
		if !ok || c > bestCount || (c == bestCount && k < best) {
			best, bestCount, ok = k, c, true
		}
	}
	return best, bestCount, ok
}
