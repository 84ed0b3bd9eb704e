package geo

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestBoundingRegion(t *testing.T) {
	fallback := Coordinate{Lat: 33.4255, Lon: -111.9400}

	tests := []struct {
		name       string
		coords     []Coordinate
		wantCenter Coordinate
		wantSpan   Span
	}{
		{
			name:       "empty uses fallback",
			coords:     nil,
			wantCenter: fallback,
			wantSpan:   Span{0.2, 0.2},
		},
		{
			name:       "single point",
			coords:     []Coordinate{{33.0, -112.0}},
			wantCenter: Coordinate{33.0, -112.0},
			wantSpan:   Span{0.2, 0.2},
		},
		{
			name:       "two points",
			coords:     []Coordinate{{33, -112}, {34, -111}},
			wantCenter: Coordinate{33.5, -111.5},
			wantSpan:   Span{1.2, 1.2},
		},
		{
			name:       "center is midpoint of extremes not mean",
			coords:     []Coordinate{{0, 0}, {0, 0}, {0, 0}, {10, 4}},
			wantCenter: Coordinate{5, 2},
			wantSpan:   Span{10.2, 4.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoundingRegion(tt.coords, fallback)
			if !near(got.Center.Lat, tt.wantCenter.Lat) || !near(got.Center.Lon, tt.wantCenter.Lon) {
				t.Errorf("center = %+v, want %+v", got.Center, tt.wantCenter)
			}
			if !near(got.Span.LatDelta, tt.wantSpan.LatDelta) || !near(got.Span.LonDelta, tt.wantSpan.LonDelta) {
				t.Errorf("span = %+v, want %+v", got.Span, tt.wantSpan)
			}
		})
	}
}

func TestBoundingRegion_ContainsEveryPoint(t *testing.T) {
	coords := []Coordinate{
		{33.4255, -111.9400},
		{52.52, 13.405},
		{-33.8688, 151.2093},
		{40.7128, -74.0060},
	}
	r := BoundingRegion(coords, Coordinate{})
	for _, c := range coords {
		if !r.Contains(c) {
			t.Errorf("region %+v does not strictly contain %+v", r, c)
		}
	}
}
