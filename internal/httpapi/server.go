// Package httpapi serves listening data and the now-playing stream over HTTP
// for a web map.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	logging "github.com/ipfs/go-log/v2"

	"github.com/joshuajeong1/musicmap/internal/listens"
	"github.com/joshuajeong1/musicmap/internal/markers"
	"github.com/joshuajeong1/musicmap/internal/nowplaying"
	"github.com/joshuajeong1/musicmap/internal/poller"
)

var log = logging.Logger("httpapi")

// Store is the listen store as seen by the API.
type Store interface {
	Snapshot() listens.Snapshot
	Clear(ctx context.Context) error
}

// Player exposes the current song, its events and playback controls.
type Player interface {
	Current() nowplaying.Song
	Source() nowplaying.Source
	Subscribe() *poller.Subscription
	Unsubscribe(sub *poller.Subscription)
}

// MapBuilder builds map markers and the framing region.
type MapBuilder interface {
	Map(ctx context.Context, mode markers.LabelMode) markers.MapView
}

// ArtistImages resolves an artist name to an image URL, "" when unknown.
type ArtistImages interface {
	Lookup(artist string) string
}

// Deps are the services the API reads from. Artists may be nil.
type Deps struct {
	Store   Store
	Player  Player
	Maps    MapBuilder
	Artists ArtistImages
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates the API server listening on addr.
func NewServer(addr string, deps Deps) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := &handlers{deps: deps}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("OK"))
		})

		r.Get("/now-playing", h.getNowPlaying)
		r.Get("/stats", h.getStats)
		r.Get("/locations", h.getLocations)
		r.Get("/markers", h.getMarkers)

		r.Route("/listens", func(r chi.Router) {
			r.Get("/", h.getListens)
			r.Delete("/", h.clearListens)
		})

		r.Post("/player/{action}", h.playerAction)
	})

	// Long-lived; kept outside the /api timeout
	router.Get("/ws/now-playing", h.nowPlayingSocket)

	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		router: router,
	}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	log.Infow("http api listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debugw("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
