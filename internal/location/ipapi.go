package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/joshuajeong1/musicmap/internal/geo"
)

const (
	DefaultIPAPIURL = "http://ip-api.com/json/"
	userAgent       = "musicmap/0.1 (https://github.com/joshuajeong1/musicmap)"
)

// IPAPI locates the machine from its public IP address using ip-api.com.
type IPAPI struct {
	baseURL    string
	httpClient *http.Client
}

// NewIPAPI creates a client for the ip-api JSON endpoint at baseURL.
// An empty baseURL uses the public endpoint.
func NewIPAPI(baseURL string) *IPAPI {
	if baseURL == "" {
		baseURL = DefaultIPAPIURL
	}
	return &IPAPI{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type ipapiResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (c *IPAPI) CurrentCity(ctx context.Context) (string, error) {
	r, err := c.lookup(ctx)
	if err != nil {
		return "", err
	}
	if r.City == "" {
		return "", ErrUnavailable
	}
	return r.City, nil
}

func (c *IPAPI) CurrentPosition(ctx context.Context) (geo.Coordinate, error) {
	r, err := c.lookup(ctx)
	if err != nil {
		return geo.Coordinate{}, err
	}
	return geo.Coordinate{Lat: r.Lat, Lon: r.Lon}, nil
}

func (c *IPAPI) lookup(ctx context.Context) (*ipapiResponse, error) {
	reqURL := c.baseURL
	if !strings.Contains(reqURL, "?") {
		reqURL += "?fields=status,message,city,lat,lon"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ip lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ip lookup: unexpected status: %s", resp.Status)
	}

	var r ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("ip lookup: decode response: %w", err)
	}
	if r.Status != "success" {
		return nil, fmt.Errorf("ip lookup: %s: %w", r.Message, ErrUnavailable)
	}
	return &r, nil
}
