//nolint:bodyclose // Test transport returns in-memory bodies
package geo

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"testing/synctest"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestNominatim(fn roundTripFunc) *Nominatim {
	n := NewNominatim("http://nominatim.test/")
	n.httpClient = &http.Client{Transport: fn}
	return n
}

func TestNominatim_Geocode(t *testing.T) {
	var gotReq *http.Request
	n := newTestNominatim(func(r *http.Request) (*http.Response, error) {
		gotReq = r
		return jsonResponse(http.StatusOK, `[{"lat":"33.4255","lon":"-111.9400","display_name":"Tempe, Arizona"}]`), nil
	})

	coord, err := n.Geocode(context.Background(), "Tempe")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if !near(coord.Lat, 33.4255) || !near(coord.Lon, -111.94) {
		t.Errorf("coord = %+v", coord)
	}

	if gotReq.URL.Path != "/search" {
		t.Errorf("path = %q, want /search", gotReq.URL.Path)
	}
	if q := gotReq.URL.Query().Get("q"); q != "Tempe" {
		t.Errorf("q = %q, want Tempe", q)
	}
	if ua := gotReq.Header.Get("User-Agent"); !strings.HasPrefix(ua, "musicmap/") {
		t.Errorf("User-Agent = %q", ua)
	}
}

func TestNominatim_Geocode_NoResults(t *testing.T) {
	n := newTestNominatim(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `[]`), nil
	})

	_, err := n.Geocode(context.Background(), "Atlantis")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNominatim_Geocode_BadStatus(t *testing.T) {
	n := newTestNominatim(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusServiceUnavailable, ``), nil
	})

	_, err := n.Geocode(context.Background(), "Tempe")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want non-NotFound error", err)
	}
}

func TestNominatim_ReverseGeocode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{"city", `{"address":{"city":"Tempe","town":"ignored"}}`, "Tempe", nil},
		{"town fallback", `{"address":{"town":"Sedona"}}`, "Sedona", nil},
		{"village fallback", `{"address":{"village":"Tusayan"}}`, "Tusayan", nil},
		{"no city", `{"address":{"country":"US"}}`, "", ErrNotFound},
		{"api error", `{"error":"Unable to geocode"}`, "", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNominatim(func(r *http.Request) (*http.Response, error) {
				if r.URL.Path != "/reverse" {
					t.Errorf("path = %q, want /reverse", r.URL.Path)
				}
				return jsonResponse(http.StatusOK, tt.body), nil
			})

			got, err := n.ReverseGeocode(context.Background(), Coordinate{Lat: 33.4, Lon: -111.9})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReverseGeocode: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNominatim_RateLimit(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		n := newTestNominatim(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `[{"lat":"1","lon":"2"}]`), nil
		})

		start := time.Now()
		for range 3 {
			if _, err := n.Geocode(context.Background(), "x"); err != nil {
				t.Fatalf("Geocode: %v", err)
			}
		}
		if elapsed := time.Since(start); elapsed < 2*time.Second {
			t.Errorf("3 requests took %v, expected at least 2s", elapsed)
		}
	})
}

func TestNominatim_RateLimit_CanceledContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		n := &Nominatim{lastRequest: time.Now()}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := n.waitForRateLimit(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}
