package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/joshuajeong1/musicmap/internal/app"
	"github.com/joshuajeong1/musicmap/internal/config"
	"github.com/joshuajeong1/musicmap/internal/errmsg"
	"github.com/joshuajeong1/musicmap/internal/geo"
	"github.com/joshuajeong1/musicmap/internal/httpapi"
	"github.com/joshuajeong1/musicmap/internal/icons"
	"github.com/joshuajeong1/musicmap/internal/listens"
	"github.com/joshuajeong1/musicmap/internal/logging"
	"github.com/joshuajeong1/musicmap/internal/markers"
	"github.com/joshuajeong1/musicmap/internal/notify"
	"github.com/joshuajeong1/musicmap/internal/poller"
	"github.com/joshuajeong1/musicmap/internal/state"
)

var log = logging.Logger("musicmap")

type options struct {
	configPath string
	headless   bool
	listen     string
	logLevel   string
	source     string
	notify     bool
}

func parseFlags() options {
	var o options
	flag.StringVarP(&o.configPath, "config", "c", "", "path to config file")
	flag.BoolVar(&o.headless, "headless", false, "run without the terminal UI (logs to stderr)")
	flag.StringVar(&o.listen, "listen", "", "serve the HTTP API on this address, e.g. 127.0.0.1:8089")
	flag.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	flag.StringVar(&o.source, "source", "", "now playing source: mpris, mpd or lastfm")
	flag.BoolVar(&o.notify, "notify", false, "show a desktop notification for every recorded listen")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
}

func run(opts options) error {
	// A missing .env is fine; only malformed files are reported.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := setupLogging(cfg, opts.headless); err != nil {
		return err
	}
	icons.Init(cfg.UI.Icons)

	stateMgr, err := state.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer stateMgr.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := listens.Open(ctx, stateMgr.DB())
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpListensLoad, err)
	}

	source, err := newSource(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpSourceConnect, err)
	}
	defer source.Close()

	geoCfg := cfg.GetGeocoderConfig()
	nominatim := geo.NewNominatim(geoCfg.URL)
	resolver, err := newResolver(cfg, nominatim)
	if err != nil {
		return err
	}

	lat, lon := cfg.GetMapFallback()
	builder := markers.NewBuilder(
		store,
		geo.NewCache(stateMgr.DB(), nominatim, geoCfg.CacheTTLDays),
		geo.Coordinate{Lat: lat, Lon: lon},
	)

	p := poller.New(source, resolver, store)
	p.Start()
	defer p.Stop()

	if cfg.Notify.Enabled {
		startNotifications(ctx, p)
	}

	log.Infow("started",
		"source", source.Name(),
		"location", cfg.GetLocationConfig().Provider,
		"listens", store.Count(),
	)

	var srv *httpapi.Server
	srvErr := make(chan error, 1)
	if cfg.HasHTTP() {
		srv = httpapi.NewServer(cfg.HTTP.Listen, httpapi.Deps{
			Store:   store,
			Player:  p,
			Maps:    builder,
			Artists: newArtistImages(cfg),
		})
		go func() {
			log.Infow("http api listening", "addr", cfg.HTTP.Listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				srvErr <- err
			}
		}()
		defer shutdownServer(srv)
	}

	if opts.headless {
		return runHeadless(ctx, p, srvErr)
	}

	prog := tea.NewProgram(
		app.New(app.Deps{Player: p, Store: store, Maps: builder}),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func applyFlags(cfg *config.Config, opts options) {
	if opts.listen != "" {
		cfg.HTTP.Listen = opts.listen
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.source != "" {
		cfg.Source.Kind = opts.source
	}
	if opts.notify {
		cfg.Notify.Enabled = true
	}
}

// setupLogging writes to stderr in headless mode and to a file under the TUI,
// which owns the terminal.
func setupLogging(cfg *config.Config, headless bool) error {
	logCfg := cfg.GetLogConfig()
	o := logging.Options{Level: logCfg.Level, File: logCfg.File, Stderr: headless}
	if !headless && o.File == "" {
		path, err := logging.DefaultFile()
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		o.File = path
	}
	return logging.Setup(o)
}

// runHeadless logs song changes and listens until ctx is cancelled.
func runHeadless(ctx context.Context, p *poller.Poller, srvErr <-chan error) error {
	sub := p.Subscribe()
	defer p.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case err := <-srvErr:
			return fmt.Errorf("%s: %w", errmsg.OpHTTPServe, err)
		case ev := <-sub.SongChanged:
			log.Infow("now playing", "title", ev.Current.Title, "artist", ev.Current.Artist, "playing", ev.Current.IsPlaying)
		case ev := <-sub.ListenRecorded:
			log.Infow("listen recorded", "title", ev.Title, "artist", ev.Artist, "location", ev.Location)
		case ev := <-sub.Dropped:
			log.Debugw("listen dropped", "title", ev.Title, "error", ev.Err)
		}
	}
}

// startNotifications announces recorded listens on the desktop until ctx ends.
func startNotifications(ctx context.Context, p *poller.Poller) {
	notifier, err := notify.New()
	if err != nil {
		log.Warnw("desktop notifications disabled", "error", err)
		return
	}
	sub := p.Subscribe()
	go func() {
		defer p.Unsubscribe(sub)
		notify.NewAnnouncer(notifier).Run(ctx, sub)
	}()
}

func shutdownServer(srv *httpapi.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnw("http shutdown", "error", err)
	}
}
