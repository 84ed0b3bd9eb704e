package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuajeong1/musicmap/internal/geo"
	"github.com/joshuajeong1/musicmap/internal/listens"
	"github.com/joshuajeong1/musicmap/internal/markers"
	"github.com/joshuajeong1/musicmap/internal/nowplaying"
	"github.com/joshuajeong1/musicmap/internal/poller"
	"github.com/joshuajeong1/musicmap/internal/stats"
)

type fakeStore struct {
	mu       sync.Mutex
	snap     listens.Snapshot
	clearErr error
}

func (f *fakeStore) Snapshot() listens.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return f.clearErr
	}
	f.snap = listens.Snapshot{}
	return nil
}

type fakeSource struct {
	mu      sync.Mutex
	actions []string
	err     error
}

func (f *fakeSource) record(a string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, a)
	return f.err
}

func (f *fakeSource) Sample(context.Context) (*nowplaying.Sample, error) { return nil, nil }
func (f *fakeSource) Pause(context.Context) error                        { return f.record("pause") }
func (f *fakeSource) Resume(context.Context) error                       { return f.record("resume") }
func (f *fakeSource) Skip(_ context.Context, d nowplaying.Direction) error {
	return f.record(d.String())
}
func (f *fakeSource) Name() string { return "fake" }

type fakePlayer struct {
	song   nowplaying.Song
	source *fakeSource
	p      *poller.Poller
}

func (f *fakePlayer) Current() nowplaying.Song             { return f.song }
func (f *fakePlayer) Source() nowplaying.Source            { return f.source }
func (f *fakePlayer) Subscribe() *poller.Subscription      { return f.p.Subscribe() }
func (f *fakePlayer) Unsubscribe(sub *poller.Subscription) { f.p.Unsubscribe(sub) }

type fakeMaps struct{ gotMode markers.LabelMode }

func (f *fakeMaps) Map(_ context.Context, mode markers.LabelMode) markers.MapView {
	f.gotMode = mode
	return markers.MapView{
		Mode:    mode.String(),
		Markers: []markers.Marker{{Location: "Tempe", Label: "Roxanne", Coordinate: geo.Coordinate{Lat: 33, Lon: -112}}},
		Region:  geo.BoundingRegion([]geo.Coordinate{{Lat: 33, Lon: -112}}, geo.Coordinate{}),
	}
}

type fakeArtists map[string]string

func (f fakeArtists) Lookup(artist string) string { return f[artist] }

type testEnv struct {
	srv    *httptest.Server
	store  *fakeStore
	player *fakePlayer
	maps   *fakeMaps
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := &fakeStore{snap: listens.Snapshot{
		Records: []listens.Record{
			{Title: "Roxanne", Artist: "The Police", Location: "Tempe", PlayCount: 5},
			{Title: "Heroes", Artist: "David Bowie", Location: "Berlin", PlayCount: 4},
			{Title: "Heroes", Artist: "David Bowie", Location: "Tempe", PlayCount: 2},
		},
		Locations: []string{"Tempe", "Berlin"},
	}}
	src := &fakeSource{}
	player := &fakePlayer{
		song: nowplaying.Song{
			Title: "Roxanne", Artist: "The Police", IsPlaying: true,
			Elapsed: 65 * time.Second, Duration: 3 * time.Minute,
		},
		source: src,
		p:      poller.New(src, nil, nil),
	}
	maps := &fakeMaps{}

	artists := fakeArtists{"David Bowie": "https://img/bowie.png"}

	s := NewServer("127.0.0.1:0", Deps{Store: store, Player: player, Maps: maps, Artists: artists})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, store: store, player: player, maps: maps}
}

func (e *testEnv) do(t *testing.T, method, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.srv.URL+path, http.NoBody)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNowPlaying(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/now-playing")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	got := decode[songResponse](t, resp)
	assert.Equal(t, "Roxanne", got.Title)
	assert.Equal(t, "01:05 / 03:00", got.Progress)
	assert.True(t, got.IsPlaying)
	assert.InDelta(t, 180.0, got.DurationSeconds, 1e-9)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)

	all := decode[stats.Summary](t, env.do(t, http.MethodGet, "/api/stats"))
	assert.Equal(t, stats.AllLocations, all.Location)
	assert.Equal(t, "Heroes", all.TopTrack.Title)
	assert.Equal(t, int64(6), all.TopTrack.PlayCount)
	require.NotNil(t, all.TopLocation)
	assert.Equal(t, "Tempe", all.TopLocation.Location)
	assert.Equal(t, int64(11), all.TotalPlays)

	tempe := decode[stats.Summary](t, env.do(t, http.MethodGet, "/api/stats?location=Tempe"))
	assert.Equal(t, "Roxanne", tempe.TopTrack.Title)
	assert.Nil(t, tempe.TopLocation)
}

func TestStats_TopArtistImage(t *testing.T) {
	env := newTestEnv(t)

	all := decode[stats.Summary](t, env.do(t, http.MethodGet, "/api/stats"))
	assert.Equal(t, "David Bowie", all.TopArtist.Artist)
	assert.Equal(t, "https://img/bowie.png", all.TopArtist.ImageURL)

	berlin := decode[stats.Summary](t, env.do(t, http.MethodGet, "/api/stats?location=Berlin"))
	assert.Equal(t, "https://img/bowie.png", berlin.TopArtist.ImageURL)

	// No image known for The Police: the field is left out.
	resp := env.do(t, http.MethodGet, "/api/stats?location=Tempe")
	var raw struct {
		TopArtist map[string]any `json:"topArtist"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, "The Police", raw.TopArtist["artist"])
	assert.NotContains(t, raw.TopArtist, "imageUrl")
}

func TestStats_WithoutArtistImages(t *testing.T) {
	store := &fakeStore{snap: listens.Snapshot{
		Records:   []listens.Record{{Title: "Heroes", Artist: "David Bowie", Location: "Berlin", PlayCount: 1}},
		Locations: []string{"Berlin"},
	}}
	s := NewServer("127.0.0.1:0", Deps{Store: store, Player: &fakePlayer{source: &fakeSource{}}, Maps: &fakeMaps{}})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	var sum stats.Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sum))
	assert.Equal(t, "David Bowie", sum.TopArtist.Artist)
	assert.Empty(t, sum.TopArtist.ImageURL)
}

func TestLocations(t *testing.T) {
	env := newTestEnv(t)

	got := decode[[]locationResponse](t, env.do(t, http.MethodGet, "/api/locations"))
	assert.Equal(t, []locationResponse{{"Tempe", 7}, {"Berlin", 4}}, got)
}

func TestListens_GetAndClear(t *testing.T) {
	env := newTestEnv(t)

	records := decode[[]listens.Record](t, env.do(t, http.MethodGet, "/api/listens"))
	assert.Len(t, records, 3)

	resp := env.do(t, http.MethodDelete, "/api/listens")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	records = decode[[]listens.Record](t, env.do(t, http.MethodGet, "/api/listens"))
	assert.Empty(t, records)
}

func TestListens_ClearFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.clearErr = errors.New("disk I/O error")

	resp := env.do(t, http.MethodDelete, "/api/listens")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "Failed to clear listening data: disk I/O error", body["error"])
}

func TestMarkers(t *testing.T) {
	env := newTestEnv(t)

	view := decode[markers.MapView](t, env.do(t, http.MethodGet, "/api/markers?mode=artist"))
	assert.Equal(t, markers.ByArtist, env.maps.gotMode)
	assert.Equal(t, "artist", view.Mode)
	require.Len(t, view.Markers, 1)
	assert.Equal(t, "Tempe", view.Markers[0].Location)

	resp := env.do(t, http.MethodGet, "/api/markers?mode=album")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlayerActions(t *testing.T) {
	env := newTestEnv(t)

	for _, action := range []string{"pause", "resume", "next", "previous"} {
		resp := env.do(t, http.MethodPost, "/api/player/"+action)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode, action)
	}
	assert.Equal(t, []string{"pause", "resume", "next", "previous"}, env.player.source.actions)

	resp := env.do(t, http.MethodPost, "/api/player/rewind")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayerActions_Unsupported(t *testing.T) {
	env := newTestEnv(t)
	env.player.source.err = nowplaying.ErrControlUnsupported

	resp := env.do(t, http.MethodPost, "/api/player/pause")
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/api/health", http.NoBody)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNowPlayingSocket(t *testing.T) {
	env := newTestEnv(t)

	url := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/ws/now-playing"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var got songResponse
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "Roxanne", got.Title)
	assert.Equal(t, "01:05 / 03:00", got.Progress)

	// Playing songs are pushed again every second.
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "Roxanne", got.Title)
}
