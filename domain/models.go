package domain

import (
	"strings"

	"github.com/samber/lo"
)

// Artist is a credited performer of a track
type Artist struct {
	ID   int64
	Name string
}

// Album is the release a track belongs to
type Album struct {
	ID       int64
	Name     string
	CoverURL string
}

// Track is an immutable catalog entry. Identity is ID.
type Track struct {
	ID         int64
	Name       string
	DurationMS int
	Artists    []Artist
	Album      Album
}

// ArtistNames joins the artist names with " / "
func (t Track) ArtistNames() string {
	return strings.Join(lo.Map(t.Artists, func(a Artist, _ int) string {
		return a.Name
	}), " / ")
}

// Playlist is a named ordered collection of tracks owned by a user.
// Tracks is only populated by a playlist detail fetch.
type Playlist struct {
	ID         int64
	Name       string
	Creator    string
	TrackCount int
	CoverURL   string
	Tracks     []Track
}

// Account is the logged in user, one per session
type Account struct {
	UserID   int64
	Nickname string
	VipType  int
	Cookie   string
}

// TrackAudio is the resolved media location of a track
type TrackAudio struct {
	ID      int64
	URL     string
	Size    int64
	Bitrate int
	MD5     string
}

// LyricLine is one timestamped lyric entry
type LyricLine struct {
	StartMS int
	Content string
}

// Route is the coarse mode of the player
type Route int

const (
	RouteLogin Route = iota
	RouteLoading
	RouteHome
	RouteSearch
	RouteDetail
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteLoading:
		return "loading"
	case RouteHome:
		return "home"
	case RouteSearch:
		return "search"
	case RouteDetail:
		return "detail"
	}
	return "unknown"
}

// Focus selects which list the directional intents navigate
type Focus int

const (
	FocusPlaylist Focus = iota
	FocusTrack
)

func (f Focus) String() string {
	if f == FocusTrack {
		return "track"
	}
	return "playlist"
}
