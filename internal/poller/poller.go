// Package poller samples the now-playing source once a second and records a
// listen whenever the track changes.
package poller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/joshuajeong1/musicmap/internal/location"
	"github.com/joshuajeong1/musicmap/internal/nowplaying"
)

var log = logging.Logger("poller")

// Interval is the time between two samples.
const Interval = time.Second

// ErrLocationUnavailable is reported when a track change happens while the
// current city cannot be resolved.
var ErrLocationUnavailable = errors.New("location unavailable")

// State is the poller lifecycle state.
type State int

const (
	Idle State = iota
	Polling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Polling:
		return "Polling"
	default:
		return "Unknown"
	}
}

// Recorder persists a listen.
type Recorder interface {
	Upsert(ctx context.Context, title, artist, albumArtURL, location string, delta int64) error
}

// Poller turns now-playing samples into recorded listens.
type Poller struct {
	source   nowplaying.Source
	resolver location.Resolver
	store    Recorder

	mu     sync.Mutex // guards state and cancel; held across Stop's join
	state  State
	cancel context.CancelFunc
	wg     sync.WaitGroup

	pollMu    sync.Mutex // serializes Poll
	lastTitle string

	songMu  sync.RWMutex
	current nowplaying.Song

	subs   []*Subscription
	subsMu sync.RWMutex
}

// New creates an idle poller.
func New(source nowplaying.Source, resolver location.Resolver, store Recorder) *Poller {
	return &Poller{
		source:   source,
		resolver: resolver,
		store:    store,
		current:  nowplaying.NotPlaying(),
	}
}

// Start begins polling: one poll immediately, then one per Interval.
// Does nothing if already polling.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Polling {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.state = Polling

	// One pending tick at most: a slow poll never builds a backlog.
	work := make(chan struct{}, 1)
	work <- struct{}{}

	p.wg.Add(2)
	go p.tickLoop(ctx, work)
	go p.worker(ctx, work)

	log.Infow("poller started", "source", p.source.Name())
}

// Stop cancels polling and waits for an in-flight poll to finish. No listen
// is recorded after Stop returns. Safe to call repeatedly.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Idle {
		return
	}

	p.cancel()
	p.wg.Wait()
	p.cancel = nil
	p.state = Idle

	log.Infow("poller stopped")
}

// State returns the lifecycle state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the latest observed song.
func (p *Poller) Current() nowplaying.Song {
	p.songMu.RLock()
	defer p.songMu.RUnlock()
	return p.current
}

// Source returns the sampled source, for playback controls.
func (p *Poller) Source() nowplaying.Source {
	return p.source
}

// Subscribe creates a new event subscription.
func (p *Poller) Subscribe() *Subscription {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()

	sub := newSubscription()
	p.subs = append(p.subs, sub)
	return sub
}

// Unsubscribe removes sub and closes its Done channel.
func (p *Poller) Unsubscribe(sub *Subscription) {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()

	i := slices.Index(p.subs, sub)
	if i < 0 {
		return
	}
	p.subs = slices.Delete(p.subs, i, i+1)
	sub.close()
}

func (p *Poller) tickLoop(ctx context.Context, work chan<- struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case work <- struct{}{}:
			default:
				// A tick is already pending
			}
		}
	}
}

func (p *Poller) worker(ctx context.Context, work <-chan struct{}) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-work:
			p.Poll(ctx)
		}
	}
}

// Poll samples the source once. A title different from the previous sample
// is a track change and records one listen at the current city.
func (p *Poller) Poll(ctx context.Context) {
	p.pollMu.Lock()
	defer p.pollMu.Unlock()

	sample, err := p.source.Sample(ctx)
	if err != nil {
		log.Debugw("sample failed", "source", p.source.Name(), "error", err)
	}
	if err != nil || sample == nil || sample.Title == "" {
		p.lastTitle = ""
		p.setCurrent(nowplaying.NotPlaying())
		return
	}

	changed := sample.Title != p.lastTitle
	p.lastTitle = sample.Title
	p.setCurrent(nowplaying.FromSample(sample))

	if changed {
		p.record(ctx, sample)
	}
}

func (p *Poller) record(ctx context.Context, s *nowplaying.Sample) {
	city, err := p.resolver.CurrentCity(ctx)
	if err == nil && city == "" {
		err = ErrLocationUnavailable
	}
	if err != nil {
		p.drop(s, fmt.Errorf("resolve location: %w", err))
		return
	}
	if err := ctx.Err(); err != nil {
		p.drop(s, err)
		return
	}

	if err := p.store.Upsert(ctx, s.Title, s.Artist, s.AlbumArtURL, city, 1); err != nil {
		p.drop(s, err)
		return
	}

	log.Infow("listen recorded", "title", s.Title, "artist", s.Artist, "location", city)
	p.broadcast(func(sub *Subscription) {
		sub.sendListen(Listen{Title: s.Title, Artist: s.Artist, Location: city})
	})
}

func (p *Poller) drop(s *nowplaying.Sample, err error) {
	log.Warnw("listen dropped", "title", s.Title, "error", err)
	p.broadcast(func(sub *Subscription) {
		sub.sendDropped(DroppedListen{Title: s.Title, Err: err})
	})
}

func (p *Poller) setCurrent(song nowplaying.Song) {
	p.songMu.Lock()
	prev := p.current
	p.current = song
	p.songMu.Unlock()

	if prev.Title == song.Title && prev.Artist == song.Artist && prev.IsPlaying == song.IsPlaying {
		return
	}
	p.broadcast(func(sub *Subscription) {
		sub.sendSong(SongChange{Previous: prev, Current: song})
	})
}

func (p *Poller) broadcast(send func(*Subscription)) {
	p.subsMu.RLock()
	defer p.subsMu.RUnlock()
	for _, sub := range p.subs {
		send(sub)
	}
}
