package library

import (
	"context"

	"github.com/samber/lo"
	"github.com/yhkl-dev/EaseCLI/domain"
	"github.com/yhkl-dev/EaseCLI/netease"
)

type NeteaseLibrary struct {
	client *netease.Client
}

func NewNeteaseLibrary(client *netease.Client) *NeteaseLibrary {
	return &NeteaseLibrary{
		client: client,
	}
}

func (n *NeteaseLibrary) Login(ctx context.Context, username, password string) (domain.Account, error) {
	resp, err := n.client.LoginCellphone(ctx, username, password)
	if err != nil {
		return domain.Account{}, err
	}
	userID := resp.Account.ID
	if userID == 0 {
		userID = resp.Profile.UserID
	}
	return domain.Account{
		UserID:   userID,
		Nickname: resp.Profile.Nickname,
		VipType:  resp.Account.VipType,
		Cookie:   resp.Cookie,
	}, nil
}

func (n *NeteaseLibrary) ListPlaylists(ctx context.Context, userID int64) ([]domain.Playlist, error) {
	lists, err := n.client.UserPlaylists(ctx, userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(lists, func(p netease.Playlist, _ int) domain.Playlist {
		converted := convertToDomainPlaylist(p)
		converted.Tracks = nil
		return converted
	}), nil
}

func (n *NeteaseLibrary) PlaylistDetail(ctx context.Context, playlistID int64) (domain.Playlist, error) {
	p, err := n.client.PlaylistDetail(ctx, playlistID)
	if err != nil {
		return domain.Playlist{}, err
	}
	return convertToDomainPlaylist(*p), nil
}

func (n *NeteaseLibrary) ResolveURL(ctx context.Context, trackIDs []int64) ([]domain.TrackAudio, error) {
	urls, err := n.client.SongURLs(ctx, trackIDs...)
	if err != nil {
		return nil, err
	}
	return lo.Map(urls, func(u netease.SongURL, _ int) domain.TrackAudio {
		return domain.TrackAudio{
			ID:      u.ID,
			URL:     u.URL,
			Size:    u.Size,
			Bitrate: u.Br,
			MD5:     u.MD5,
		}
	}), nil
}

func (n *NeteaseLibrary) LikeList(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	ids, err := n.client.LikeList(ctx, userID)
	if err != nil {
		return nil, err
	}
	return lo.SliceToMap(ids, func(id int64) (int64, struct{}) {
		return id, struct{}{}
	}), nil
}

func (n *NeteaseLibrary) FetchLyric(ctx context.Context, trackID int64) (string, error) {
	return n.client.Lyric(ctx, trackID)
}

func (n *NeteaseLibrary) Like(ctx context.Context, trackID int64, like bool) error {
	return n.client.Like(ctx, trackID, like)
}

func convertToDomainPlaylist(p netease.Playlist) domain.Playlist {
	return domain.Playlist{
		ID:         p.ID,
		Name:       p.Name,
		Creator:    p.Creator.Nickname,
		TrackCount: p.TrackCount,
		CoverURL:   p.CoverImgURL,
		Tracks:     lo.Map(p.Tracks, func(t netease.Track, _ int) domain.Track { return convertToDomainTrack(t) }),
	}
}

func convertToDomainTrack(t netease.Track) domain.Track {
	return domain.Track{
		ID:         t.ID,
		Name:       t.Name,
		DurationMS: t.Dt,
		Artists: lo.Map(t.Ar, func(a netease.Artist, _ int) domain.Artist {
			return domain.Artist{ID: a.ID, Name: a.Name}
		}),
		Album: domain.Album{
			ID:       t.Al.ID,
			Name:     t.Al.Name,
			CoverURL: t.Al.PicURL,
		},
	}
}

var (
	_ Catalog = (*NeteaseLibrary)(nil)
	_ Liker   = (*NeteaseLibrary)(nil)
)
