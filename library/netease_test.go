package library

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yhkl-dev/EaseCLI/netease"
)

func newTestLibrary(t *testing.T) *NeteaseLibrary {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login/cellphone":
			fmt.Fprint(w, `{"code":200,"account":{"id":0,"vipType":0},"profile":{"nickname":"nick","userId":77},"cookie":"c=1"}`)
		case "/user/playlist":
			fmt.Fprint(w, `{"code":200,"playlist":[{"id":1,"name":"P","creator":{"nickname":"nick"},"trackCount":3,"tracks":[{"id":9}]}]}`)
		case "/playlist/detail":
			fmt.Fprint(w, `{"code":200,"playlist":{"id":1,"name":"P","tracks":[{"id":5,"name":"Song","ar":[{"id":1,"name":"A"},{"id":2,"name":"B"}],"al":{"id":3,"name":"Alb","picUrl":"http://img"},"dt":61000}]}}`)
		case "/song/url":
			fmt.Fprint(w, `{"code":200,"data":[{"id":5,"url":"http://cdn/5.flac","size":10,"br":999000,"md5":"m"}]}`)
		case "/likelist":
			fmt.Fprint(w, `{"code":200,"ids":[5,6,5]}`)
		case "/lyric":
			fmt.Fprint(w, `{"code":200,"lrc":{"lyric":"[00:01.00]x"}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client, err := netease.Init(server.URL, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return NewNeteaseLibrary(client)
}

func TestNeteaseLibraryLoginFallsBackToProfileID(t *testing.T) {
	lib := newTestLibrary(t)
	account, err := lib.Login(context.Background(), "p", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if account.UserID != 77 || account.Nickname != "nick" || account.Cookie != "c=1" {
		t.Errorf("unexpected account %+v", account)
	}
}

func TestNeteaseLibraryConvertsPlaylists(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	lists, err := lib.ListPlaylists(ctx, 77)
	if err != nil {
		t.Fatalf("ListPlaylists: %v", err)
	}
	if len(lists) != 1 || lists[0].Creator != "nick" || lists[0].TrackCount != 3 {
		t.Errorf("unexpected playlists %+v", lists)
	}
	if len(lists[0].Tracks) != 0 {
		t.Errorf("playlist summaries must not carry tracks")
	}

	detail, err := lib.PlaylistDetail(ctx, 1)
	if err != nil {
		t.Fatalf("PlaylistDetail: %v", err)
	}
	track := detail.Tracks[0]
	if track.ID != 5 || track.DurationMS != 61000 || track.Album.CoverURL != "http://img" {
		t.Errorf("unexpected track %+v", track)
	}
	if track.ArtistNames() != "A / B" {
		t.Errorf("unexpected artists %q", track.ArtistNames())
	}
}

func TestNeteaseLibraryMediaAndLikes(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	audio, err := lib.ResolveURL(ctx, []int64{5})
	if err != nil {
		t.Fatalf("ResolveURL: %v", err)
	}
	if len(audio) != 1 || audio[0].URL != "http://cdn/5.flac" || audio[0].Bitrate != 999000 {
		t.Errorf("unexpected audio %+v", audio)
	}

	likes, err := lib.LikeList(ctx, 77)
	if err != nil {
		t.Fatalf("LikeList: %v", err)
	}
	if len(likes) != 2 {
		t.Errorf("expected a deduplicated set of 2, got %v", likes)
	}
	if _, ok := likes[6]; !ok {
		t.Errorf("expected 6 in likes")
	}

	text, err := lib.FetchLyric(ctx, 5)
	if err != nil || text != "[00:01.00]x" {
		t.Errorf("unexpected lyric %q, %v", text, err)
	}
}
