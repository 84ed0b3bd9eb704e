package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	userAgent           = "musicmap/0.1 (https://github.com/joshuajeong1/musicmap)"
	rateLimitDur        = time.Second // Nominatim usage policy: max 1 request per second
)

// Nominatim is an OpenStreetMap Nominatim client implementing Geocoder and
// Reverser.
type Nominatim struct {
	baseURL     string
	httpClient  *http.Client
	lastRequest time.Time
	mu          sync.Mutex
}

// NewNominatim creates a client for the Nominatim instance at baseURL.
// An empty baseURL uses the public instance.
func NewNominatim(baseURL string) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	return &Nominatim{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	Error   string `json:"error"`
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
	} `json:"address"`
}

// Geocode returns the coordinate of the best match for name.
func (n *Nominatim) Geocode(ctx context.Context, name string) (Coordinate, error) {
	params := url.Values{}
	params.Set("q", name)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	var results []searchResult
	if err := n.get(ctx, "/search", params, &results); err != nil {
		return Coordinate{}, fmt.Errorf("geocode %q: %w", name, err)
	}
	if len(results) == 0 {
		return Coordinate{}, fmt.Errorf("geocode %q: %w", name, ErrNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("geocode %q: parse lat: %w", name, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("geocode %q: parse lon: %w", name, err)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// ReverseGeocode returns the city (or town, village) containing c.
func (n *Nominatim) ReverseGeocode(ctx context.Context, c Coordinate) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))
	params.Set("format", "jsonv2")
	params.Set("zoom", "10")

	var result reverseResult
	if err := n.get(ctx, "/reverse", params, &result); err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("reverse geocode: %w", ErrNotFound)
	}

	a := result.Address
	for _, name := range []string{a.City, a.Town, a.Village, a.Municipality} {
		if name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("reverse geocode: %w", ErrNotFound)
}

func (n *Nominatim) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := n.waitForRateLimit(ctx); err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s%s?%s", n.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// waitForRateLimit spaces requests at least rateLimitDur apart.
func (n *Nominatim) waitForRateLimit(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.lastRequest.IsZero() {
		if wait := rateLimitDur - time.Since(n.lastRequest); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	n.lastRequest = time.Now()
	return nil
}
