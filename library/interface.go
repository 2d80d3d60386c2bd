package library

import (
	"context"

	"github.com/yhkl-dev/EaseCLI/domain"
)

// Catalog is the remote music service as the player engine sees it
type Catalog interface {
	Login(ctx context.Context, username, password string) (domain.Account, error)
	ListPlaylists(ctx context.Context, userID int64) ([]domain.Playlist, error)
	PlaylistDetail(ctx context.Context, playlistID int64) (domain.Playlist, error)
	// ResolveURL may return fewer entries than requested. Entries with an
	// empty URL cannot be played.
	ResolveURL(ctx context.Context, trackIDs []int64) ([]domain.TrackAudio, error)
	LikeList(ctx context.Context, userID int64) (map[int64]struct{}, error)
	FetchLyric(ctx context.Context, trackID int64) (string, error)
}

// Liker is implemented by catalogs that can store likes upstream
type Liker interface {
	Like(ctx context.Context, trackID int64, like bool) error
}
