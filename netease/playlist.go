package netease

import (
	"context"
	"net/url"
	"strconv"
)

// UserPlaylists returns the playlists created or subscribed by uid
func (c *Client) UserPlaylists(ctx context.Context, uid int64) ([]Playlist, error) {
	params := url.Values{}
	params.Set("uid", strconv.FormatInt(uid, 10))

	var resp UserPlaylistResponse
	if err := c.get(ctx, "/user/playlist", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/user/playlist", resp.Code, ""); err != nil {
		return nil, err
	}
	return resp.Playlist, nil
}

// PlaylistDetail returns one playlist with its tracks populated
func (c *Client) PlaylistDetail(ctx context.Context, id int64) (*Playlist, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(id, 10))

	var resp PlaylistDetailResponse
	if err := c.get(ctx, "/playlist/detail", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/playlist/detail", resp.Code, ""); err != nil {
		return nil, err
	}
	return &resp.Playlist, nil
}
