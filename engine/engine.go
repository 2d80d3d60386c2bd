// Package engine owns the player state. Every change goes through Dispatch,
// which the host calls from a single goroutine.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yhkl-dev/EaseCLI/domain"
	"github.com/yhkl-dev/EaseCLI/library"
	"github.com/yhkl-dev/EaseCLI/logging"
	"github.com/yhkl-dev/EaseCLI/lyric"
	"github.com/yhkl-dev/EaseCLI/player"
	"go.uber.org/atomic"
)

const (
	defaultTickRate = time.Second
	// QueueSize is the capacity hosts should give the intent channel
	QueueSize = 64
)

// MediaFetcher turns a remote URL into a local file path
type MediaFetcher interface {
	Fetch(ctx context.Context, url, filename string) (string, error)
}

// Options wires an Engine to its collaborators
type Options struct {
	Catalog  library.Catalog
	Media    MediaFetcher
	Sinks    player.Factory
	TickRate time.Duration
	// Volume is the starting volume in percent
	Volume int
	// OnChange receives a snapshot after every dispatched intent
	OnChange func(Snapshot)
}

type Engine struct {
	catalog  library.Catalog
	media    MediaFetcher
	newSink  player.Factory
	sink     player.Sink
	tickRate int // ms
	onChange func(Snapshot)
	log      *logrus.Entry
	quit     *atomic.Bool

	mu     sync.RWMutex
	latest Snapshot

	route  domain.Route
	focus  domain.Focus
	status string

	playlists         []domain.Playlist
	playlistCursor    int
	tracksView        []domain.Track
	trackCursor       int
	viewPlaylistIndex int

	queue                []domain.Track
	currentIndex         int
	playingPlaylistIndex int

	paused    bool
	seekMS    int
	volumePct int

	lyric      lyric.Index
	showLyric  bool
	systemTick uint64
	likes      map[int64]struct{}

	account  domain.Account
	loggedIn bool
}

// New builds an engine in the Login route with one idle sink
func New(opts Options) (*Engine, error) {
	if opts.Catalog == nil || opts.Media == nil || opts.Sinks == nil {
		return nil, errors.New("engine needs a catalog, a media fetcher and a sink factory")
	}
	sink, err := opts.Sinks()
	if err != nil {
		return nil, errors.Wrap(err, "open audio output")
	}

	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}

	e := &Engine{
		catalog:              opts.Catalog,
		media:                opts.Media,
		newSink:              opts.Sinks,
		sink:                 sink,
		tickRate:             int(tickRate / time.Millisecond),
		onChange:             opts.OnChange,
		log:                  logging.For("engine"),
		quit:                 atomic.NewBool(false),
		route:                domain.RouteLogin,
		focus:                domain.FocusPlaylist,
		viewPlaylistIndex:    -1,
		playingPlaylistIndex: -1,
		volumePct:            clampPercent(opts.Volume),
		likes:                map[int64]struct{}{},
	}
	e.sink.SetVolume(e.volume())
	e.latest = e.snapshot()
	return e, nil
}

// Snapshot returns the state as of the last completed intent
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.latest
}

// ShouldQuit reports whether a Quit intent has been processed
func (e *Engine) ShouldQuit() bool {
	return e.quit.Load()
}

// Close stops the current sink
func (e *Engine) Close() {
	e.sink.Stop()
}

// Run dispatches intents until Quit, until intents is closed, or until ctx
// is done.
func (e *Engine) Run(ctx context.Context, intents <-chan Intent) error {
	for !e.ShouldQuit() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-intents:
			if !ok {
				return nil
			}
			e.Dispatch(ctx, in)
		}
	}
	return nil
}

// Dispatch runs one intent to completion and publishes the new state.
// Failures never escape: they end up in Snapshot.Status.
func (e *Engine) Dispatch(ctx context.Context, in Intent) {
	if in.Kind != Tick {
		e.log.WithField("intent", in.Kind).Debug("dispatch")
	}

	switch in.Kind {
	case NavigateUp:
		e.moveCursor(-1)
	case NavigateDown:
		e.moveCursor(1)
	case NavigateLeft, NavigateRight:
		e.toggleFocus()
	case Activate:
		e.activate(ctx)
	case TogglePause:
		e.setPaused(!e.paused)
	case Pause:
		if !e.paused {
			e.setPaused(true)
		}
	case VolumeUp:
		e.adjustVolume(1)
	case VolumeDown:
		e.adjustVolume(-1)
	case NextTrack:
		e.skip(ctx, 1)
	case PrevTrack:
		e.skip(ctx, -1)
	case ToggleLike:
		e.toggleLike(ctx)
	case ToggleLyric:
		e.showLyric = !e.showLyric
	case Login:
		e.login(ctx, in.Username, in.Password)
	case Quit:
		e.quit.Store(true)
	case Tick:
		e.tick(ctx)
	case OpenDetail:
		if e.route == domain.RouteHome {
			e.route = domain.RouteDetail
		}
	case Back:
		if e.route == domain.RouteDetail || e.route == domain.RouteSearch {
			e.route = domain.RouteHome
		}
	default:
		e.log.WithField("intent", int(in.Kind)).Warn("unknown intent")
	}

	e.publish()
}

func (e *Engine) publish() {
	snap := e.snapshot()
	e.mu.Lock()
	e.latest = snap
	e.mu.Unlock()
	if e.onChange != nil {
		e.onChange(snap)
	}
}

// fail records a non-fatal error as the status line
func (e *Engine) fail(op string, err error) {
	e.status = fmt.Sprintf("%s: %v", op, err)
	e.log.WithError(err).WithField("op", op).Warn("intent failed")
}

func (e *Engine) moveCursor(delta int) {
	if e.focus == domain.FocusPlaylist {
		e.playlistCursor = saturate(e.playlistCursor+delta, len(e.playlists))
		return
	}
	e.trackCursor = saturate(e.trackCursor+delta, len(e.tracksView))
}

func (e *Engine) toggleFocus() {
	if e.focus == domain.FocusPlaylist {
		e.focus = domain.FocusTrack
	} else {
		e.focus = domain.FocusPlaylist
	}
}

func (e *Engine) activate(ctx context.Context) {
	if e.focus == domain.FocusPlaylist {
		e.openPlaylist(ctx)
		return
	}
	if len(e.tracksView) == 0 {
		return
	}

	track := e.tracksView[e.trackCursor]
	if err := e.startPlayback(ctx, track); err != nil {
		e.fail("play", err)
		return
	}
	e.queue = append([]domain.Track(nil), e.tracksView...)
	e.currentIndex = e.trackCursor
	e.playingPlaylistIndex = e.viewPlaylistIndex
}

func (e *Engine) openPlaylist(ctx context.Context) {
	if len(e.playlists) == 0 {
		return
	}
	summary := e.playlists[e.playlistCursor]
	detail, err := e.catalog.PlaylistDetail(ctx, summary.ID)
	if err != nil {
		e.fail("open playlist", err)
		return
	}
	e.showPlaylist(e.playlistCursor, detail)
	e.focus = domain.FocusTrack
	e.status = ""
}

// showPlaylist makes detail the track view. The playlists slice is replaced
// rather than written to, since snapshots share it.
func (e *Engine) showPlaylist(index int, detail domain.Playlist) {
	playlists := append([]domain.Playlist(nil), e.playlists...)
	playlists[index].Tracks = detail.Tracks
	e.playlists = playlists

	e.tracksView = detail.Tracks
	e.trackCursor = 0
	e.viewPlaylistIndex = index
}

func (e *Engine) setPaused(paused bool) {
	e.paused = paused
	if paused {
		e.sink.Pause()
	} else {
		e.sink.Play()
	}
}

func (e *Engine) adjustVolume(deltaPct int) {
	e.volumePct = clampPercent(e.volumePct + deltaPct)
	e.sink.SetVolume(e.volume())
}

func (e *Engine) volume() float32 {
	return float32(e.volumePct) / 100
}

func (e *Engine) skip(ctx context.Context, delta int) {
	n := len(e.queue)
	if n == 0 {
		return
	}
	e.currentIndex = ((e.currentIndex+delta)%n + n) % n
	if err := e.startPlayback(ctx, e.queue[e.currentIndex]); err != nil {
		e.fail("play", err)
	}
}

func (e *Engine) toggleLike(ctx context.Context) {
	track, ok := e.currentTrack()
	if !ok {
		return
	}

	previous := e.likes
	_, liked := previous[track.ID]
	e.likes = withLike(previous, track.ID, !liked)

	liker, ok := e.catalog.(library.Liker)
	if !ok {
		return
	}
	if err := liker.Like(ctx, track.ID, !liked); err != nil {
		e.likes = previous
		e.fail("like", err)
	}
}

func (e *Engine) currentTrack() (domain.Track, bool) {
	if len(e.queue) == 0 {
		return domain.Track{}, false
	}
	return e.queue[e.currentIndex], true
}
