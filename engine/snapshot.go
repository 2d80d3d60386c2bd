package engine

import (
	"github.com/yhkl-dev/EaseCLI/domain"
	"github.com/yhkl-dev/EaseCLI/lyric"
)

// Snapshot is a read-only copy of the engine state for rendering.
// Slices and maps are shared with the engine, which never mutates them in
// place after publishing.
type Snapshot struct {
	Route domain.Route
	Focus domain.Focus

	Playlists      []domain.Playlist
	PlaylistCursor int
	TracksView     []domain.Track
	TrackCursor    int

	Queue                []domain.Track
	CurrentIndex         int
	PlayingPlaylistIndex int // -1 until something plays

	Paused bool
	SeekMS int
	Volume float32

	Lyric     lyric.Index
	LyricLine string
	ShowLyric bool

	SystemTick uint64
	Likes      map[int64]struct{}
	Account    domain.Account
	LoggedIn   bool
	Status     string
}

// CurrentTrack returns the queue entry being played
func (s Snapshot) CurrentTrack() (domain.Track, bool) {
	if len(s.Queue) == 0 || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Queue) {
		return domain.Track{}, false
	}
	return s.Queue[s.CurrentIndex], true
}

// Liked reports whether id is in the like set
func (s Snapshot) Liked(id int64) bool {
	_, ok := s.Likes[id]
	return ok
}

// PlayingPlaylist returns the playlist the queue was taken from
func (s Snapshot) PlayingPlaylist() (domain.Playlist, bool) {
	if s.PlayingPlaylistIndex < 0 || s.PlayingPlaylistIndex >= len(s.Playlists) {
		return domain.Playlist{}, false
	}
	return s.Playlists[s.PlayingPlaylistIndex], true
}

func (e *Engine) snapshot() Snapshot {
	return Snapshot{
		Route:                e.route,
		Focus:                e.focus,
		Playlists:            e.playlists,
		PlaylistCursor:       e.playlistCursor,
		TracksView:           e.tracksView,
		TrackCursor:          e.trackCursor,
		Queue:                e.queue,
		CurrentIndex:         e.currentIndex,
		PlayingPlaylistIndex: e.playingPlaylistIndex,
		Paused:               e.paused,
		SeekMS:               e.seekMS,
		Volume:               e.volume(),
		Lyric:                e.lyric,
		LyricLine:            e.lyric.At(e.seekMS),
		ShowLyric:            e.showLyric,
		SystemTick:           e.systemTick,
		Likes:                e.likes,
		Account:              e.account,
		LoggedIn:             e.loggedIn,
		Status:               e.status,
	}
}
