// Package location resolves the city the user is currently in.
package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshuajeong1/musicmap/internal/geo"
)

// ErrUnavailable is returned when the current city cannot be determined.
var ErrUnavailable = errors.New("location unavailable")

// Resolver reports the current city. An empty name or an error means the
// location is unavailable.
type Resolver interface {
	CurrentCity(ctx context.Context) (string, error)
}

// Positioner reports the current coordinate.
type Positioner interface {
	CurrentPosition(ctx context.Context) (geo.Coordinate, error)
}

// Static always reports the same city.
type Static struct {
	City string
}

func (s Static) CurrentCity(context.Context) (string, error) {
	if s.City == "" {
		return "", ErrUnavailable
	}
	return s.City, nil
}

// Fixed is a Positioner at a configured coordinate.
type Fixed geo.Coordinate

func (f Fixed) CurrentPosition(context.Context) (geo.Coordinate, error) {
	return geo.Coordinate(f), nil
}

// Reverse resolves the city by reverse geocoding the current position.
type Reverse struct {
	Position Positioner
	Reverser geo.Reverser
}

func (r Reverse) CurrentCity(ctx context.Context) (string, error) {
	pos, err := r.Position.CurrentPosition(ctx)
	if err != nil {
		return "", fmt.Errorf("current position: %w", err)
	}
	city, err := r.Reverser.ReverseGeocode(ctx, pos)
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	return city, nil
}
