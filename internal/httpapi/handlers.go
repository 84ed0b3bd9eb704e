package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joshuajeong1/musicmap/internal/errmsg"
	"github.com/joshuajeong1/musicmap/internal/markers"
	"github.com/joshuajeong1/musicmap/internal/nowplaying"
	"github.com/joshuajeong1/musicmap/internal/stats"
)

type handlers struct {
	deps Deps
}

// songResponse is the JSON form of the current song.
type songResponse struct {
	Title           string  `json:"title"`
	Artist          string  `json:"artist"`
	AlbumArtURL     string  `json:"albumArtUrl"`
	IsPlaying       bool    `json:"isPlaying"`
	Progress        string  `json:"progress"`
	ElapsedSeconds  float64 `json:"elapsedSeconds"`
	DurationSeconds float64 `json:"durationSeconds"`
}

func newSongResponse(s nowplaying.Song) songResponse {
	return songResponse{
		Title:           s.Title,
		Artist:          s.Artist,
		AlbumArtURL:     s.AlbumArtURL,
		IsPlaying:       s.IsPlaying,
		Progress:        s.Progress(),
		ElapsedSeconds:  s.Elapsed.Seconds(),
		DurationSeconds: s.Duration.Seconds(),
	}
}

type locationResponse struct {
	Name       string `json:"name"`
	TotalPlays int64  `json:"totalPlays"`
}

func (h *handlers) getNowPlaying(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, newSongResponse(h.deps.Player.Current()))
}

// getStats summarizes one location, or all of them when location is absent.
func (h *handlers) getStats(w http.ResponseWriter, r *http.Request) {
	location := stats.AllLocations
	if r.URL.Query().Has("location") {
		location = r.URL.Query().Get("location")
	}
	snap := h.deps.Store.Snapshot()
	sum := stats.Summarize(snap.Records, location)
	if h.deps.Artists != nil {
		sum.TopArtist.ImageURL = h.deps.Artists.Lookup(sum.TopArtist.Artist)
	}
	respondWithJSON(w, http.StatusOK, sum)
}

func (h *handlers) getLocations(w http.ResponseWriter, _ *http.Request) {
	snap := h.deps.Store.Snapshot()
	out := make([]locationResponse, 0, len(snap.Locations))
	for _, loc := range snap.Locations {
		out = append(out, locationResponse{
			Name:       loc,
			TotalPlays: stats.TotalPlays(snap.Records, loc),
		})
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (h *handlers) getListens(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, h.deps.Store.Snapshot().Records)
}

func (h *handlers) clearListens(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Store.Clear(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, errmsg.Format(errmsg.OpListensClear, err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) getMarkers(w http.ResponseWriter, r *http.Request) {
	mode, err := markers.ParseLabelMode(r.URL.Query().Get("mode"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	respondWithJSON(w, http.StatusOK, h.deps.Maps.Map(r.Context(), mode))
}

func (h *handlers) playerAction(w http.ResponseWriter, r *http.Request) {
	src := h.deps.Player.Source()
	ctx := r.Context()

	var op errmsg.Op
	var err error
	switch chi.URLParam(r, "action") {
	case "pause":
		op, err = errmsg.OpPlaybackPause, src.Pause(ctx)
	case "resume":
		op, err = errmsg.OpPlaybackResume, src.Resume(ctx)
	case "next":
		op, err = errmsg.OpPlaybackSkip, src.Skip(ctx, nowplaying.Next)
	case "previous":
		op, err = errmsg.OpPlaybackSkip, src.Skip(ctx, nowplaying.Previous)
	default:
		respondWithError(w, http.StatusNotFound, "unknown player action", nil)
		return
	}

	if err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, nowplaying.ErrControlUnsupported) {
			code = http.StatusNotImplemented
		}
		respondWithError(w, code, errmsg.Format(op, err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondWithJSON writes payload as a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError writes a JSON error body and logs server-side failures.
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil && code >= 500 {
		log.Warnw("http error", "code", code, "message", message, "error", err)
	}
	respondWithJSON(w, code, map[string]string{"error": message})
}
