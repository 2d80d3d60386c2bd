package netease

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// SongURLs resolves playable URLs for the given track ids. Entries the
// service cannot serve come back with an empty URL.
func (c *Client) SongURLs(ctx context.Context, ids ...int64) ([]SongURL, error) {
	params := url.Values{}
	params.Set("id", joinIDs(ids))

	var resp SongURLResponse
	if err := c.get(ctx, "/song/url", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/song/url", resp.Code, ""); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// LikeList returns the ids of the tracks uid has liked
func (c *Client) LikeList(ctx context.Context, uid int64) ([]int64, error) {
	params := url.Values{}
	params.Set("uid", strconv.FormatInt(uid, 10))

	var resp LikeListResponse
	if err := c.get(ctx, "/likelist", params, &resp); err != nil {
		return nil, err
	}
	if err := checkCode("/likelist", resp.Code, ""); err != nil {
		return nil, err
	}
	return resp.IDs, nil
}

// Lyric returns the raw LRC text of a track. Tracks without lyrics yield "".
func (c *Client) Lyric(ctx context.Context, id int64) (string, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(id, 10))

	var resp LyricResponse
	if err := c.get(ctx, "/lyric", params, &resp); err != nil {
		return "", err
	}
	if err := checkCode("/lyric", resp.Code, ""); err != nil {
		return "", err
	}
	return resp.Lrc.Lyric, nil
}

// Like marks or unmarks a track as liked for the logged in user
func (c *Client) Like(ctx context.Context, id int64, like bool) error {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(id, 10))
	params.Set("like", strconv.FormatBool(like))

	var resp statusResponse
	if err := c.get(ctx, "/like", params, &resp); err != nil {
		return err
	}
	return checkCode("/like", resp.Code, resp.Message)
}

func joinIDs(ids []int64) string {
	return strings.Join(lo.Map(ids, func(id int64, _ int) string {
		return strconv.FormatInt(id, 10)
	}), ",")
}
