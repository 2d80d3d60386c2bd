package engine

import (
	"context"
	"fmt"

	"github.com/yhkl-dev/EaseCLI/domain"
)

type bootstrap struct {
	account   domain.Account
	likes     map[int64]struct{}
	playlists []domain.Playlist
	first     *domain.Playlist
}

// login moves Login -> Loading -> Home, or back to Login on any failure.
// Nothing fetched is visible until every call has succeeded.
func (e *Engine) login(ctx context.Context, username, password string) {
	if e.route != domain.RouteLogin {
		return
	}
	e.route = domain.RouteLoading
	e.status = "logging in..."
	e.publish()

	boot, err := e.bootstrap(ctx, username, password)
	if err != nil {
		e.route = domain.RouteLogin
		e.fail("login", err)
		return
	}

	e.account = boot.account
	e.loggedIn = true
	e.likes = boot.likes
	e.playlists = boot.playlists
	e.playlistCursor = 0
	e.focus = domain.FocusPlaylist
	if boot.first != nil {
		e.showPlaylist(0, *boot.first)
	}
	e.route = domain.RouteHome
	e.status = fmt.Sprintf("welcome, %s", boot.account.Nickname)
	e.log.WithField("user_id", boot.account.UserID).Info("session ready")
}

func (e *Engine) bootstrap(ctx context.Context, username, password string) (*bootstrap, error) {
	account, err := e.catalog.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	likes, err := e.catalog.LikeList(ctx, account.UserID)
	if err != nil {
		return nil, err
	}
	playlists, err := e.catalog.ListPlaylists(ctx, account.UserID)
	if err != nil {
		return nil, err
	}

	boot := &bootstrap{account: account, likes: likes, playlists: playlists}
	if boot.likes == nil {
		boot.likes = map[int64]struct{}{}
	}
	if len(playlists) > 0 {
		detail, err := e.catalog.PlaylistDetail(ctx, playlists[0].ID)
		if err != nil {
			return nil, err
		}
		boot.first = &detail
	}
	return boot, nil
}
