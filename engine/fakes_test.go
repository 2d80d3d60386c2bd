package engine

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yhkl-dev/EaseCLI/domain"
	"github.com/yhkl-dev/EaseCLI/player"
)

type fakeCatalog struct {
	calls     []string
	account   domain.Account
	playlists []domain.Playlist
	details   map[int64]domain.Playlist
	urls      map[int64]string
	lyrics    map[int64]string
	likes     []int64
	failOn    string
}

func (f *fakeCatalog) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn == call {
		if call == "login" {
			return errors.Wrap(domain.ErrAuth, "bad password")
		}
		return errors.Wrapf(domain.ErrNetwork, "%s timed out", call)
	}
	return nil
}

func (f *fakeCatalog) Login(_ context.Context, _, _ string) (domain.Account, error) {
	if err := f.record("login"); err != nil {
		return domain.Account{}, err
	}
	return f.account, nil
}

func (f *fakeCatalog) ListPlaylists(_ context.Context, _ int64) ([]domain.Playlist, error) {
	if err := f.record("list_playlists"); err != nil {
		return nil, err
	}
	return f.playlists, nil
}

func (f *fakeCatalog) PlaylistDetail(_ context.Context, id int64) (domain.Playlist, error) {
	if err := f.record("playlist_detail"); err != nil {
		return domain.Playlist{}, err
	}
	return f.details[id], nil
}

func (f *fakeCatalog) ResolveURL(_ context.Context, ids []int64) ([]domain.TrackAudio, error) {
	if err := f.record("resolve_url"); err != nil {
		return nil, err
	}
	var out []domain.TrackAudio
	for _, id := range ids {
		if url, ok := f.urls[id]; ok {
			out = append(out, domain.TrackAudio{ID: id, URL: url})
		}
	}
	return out, nil
}

func (f *fakeCatalog) LikeList(_ context.Context, _ int64) (map[int64]struct{}, error) {
	if err := f.record("like_list"); err != nil {
		return nil, err
	}
	set := map[int64]struct{}{}
	for _, id := range f.likes {
		set[id] = struct{}{}
	}
	return set, nil
}

func (f *fakeCatalog) FetchLyric(_ context.Context, id int64) (string, error) {
	if err := f.record("fetch_lyric"); err != nil {
		return "", err
	}
	return f.lyrics[id], nil
}

// likingCatalog also stores likes upstream
type likingCatalog struct {
	*fakeCatalog
	likeErr error
	pushed  []bool
}

func (l *likingCatalog) Like(_ context.Context, _ int64, like bool) error {
	l.pushed = append(l.pushed, like)
	return l.likeErr
}

type fakeMedia struct {
	fetched []string
	fail    map[string]bool
}

func (m *fakeMedia) Fetch(_ context.Context, url, filename string) (string, error) {
	if m.fail[url] {
		return "", errors.Wrap(domain.ErrUnavailableTrack, "download failed")
	}
	m.fetched = append(m.fetched, filename)
	return "/cache/" + filename, nil
}

type fakeSink struct {
	rejects  map[string]bool
	empty    bool
	paused   bool
	stopped  bool
	volume   float32
	appended []string
}

func (s *fakeSink) CanPlay(path string) error {
	if s.rejects[path] {
		return errors.Errorf("unsupported audio format: %s", path)
	}
	return nil
}

func (s *fakeSink) Append(path string) error {
	if s.rejects[path] {
		return errors.Errorf("unsupported audio format: %s", path)
	}
	s.appended = append(s.appended, path)
	s.empty = false
	return nil
}

func (s *fakeSink) Play()  { s.paused = false }
func (s *fakeSink) Pause() { s.paused = true }

func (s *fakeSink) Stop() {
	s.stopped = true
	s.empty = true
}

func (s *fakeSink) IsEmpty() bool        { return s.empty }
func (s *fakeSink) SetVolume(v float32)  { s.volume = v }
func (s *fakeSink) Volume() float32      { return s.volume }
func (s *fakeSink) finish()              { s.empty = true }
func (s *fakeSink) lastAppended() string { return s.appended[len(s.appended)-1] }
func (s *fakeSink) appendedCount() int   { return len(s.appended) }

type sinkRecorder struct {
	sinks   []*fakeSink
	rejects map[string]bool
}

func (r *sinkRecorder) factory() player.Factory {
	return func() (player.Sink, error) {
		s := &fakeSink{empty: true, rejects: r.rejects}
		r.sinks = append(r.sinks, s)
		return s, nil
	}
}

func (r *sinkRecorder) current() *fakeSink {
	return r.sinks[len(r.sinks)-1]
}

func track(id int64, name string) domain.Track {
	return domain.Track{ID: id, Name: name, DurationMS: 180_000}
}

// newCatalog returns a catalog with one playlist (id 100) holding tracks,
// each resolvable to an mp3 URL.
func newCatalog(tracks ...domain.Track) *fakeCatalog {
	urls := map[int64]string{}
	for _, t := range tracks {
		urls[t.ID] = "http://cdn.test/" + t.Name + ".mp3"
	}
	return &fakeCatalog{
		account:   domain.Account{UserID: 1, Nickname: "tester"},
		playlists: []domain.Playlist{{ID: 100, Name: "Mix", TrackCount: len(tracks)}, {ID: 200, Name: "Other"}},
		details: map[int64]domain.Playlist{
			100: {ID: 100, Name: "Mix", Tracks: tracks},
			200: {ID: 200, Name: "Other"},
		},
		urls:   urls,
		lyrics: map[int64]string{},
	}
}
