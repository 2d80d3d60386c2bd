package netease

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/yhkl-dev/EaseCLI/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := Init(server.URL+"/", 5*time.Second)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return c
}

func TestLoginCellphone(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login/cellphone" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("phone") != "10086" || r.URL.Query().Get("password") != "pw" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		http.SetCookie(w, &http.Cookie{Name: "MUSIC_U", Value: "session", Path: "/"})
		fmt.Fprint(w, `{"code":200,"account":{"id":42,"userName":"u","vipType":11},"profile":{"nickname":"nick","userId":42},"token":"tok","cookie":"MUSIC_U=session"}`)
	})

	resp, err := c.LoginCellphone(context.Background(), "10086", "pw")
	if err != nil {
		t.Fatalf("LoginCellphone: %v", err)
	}
	if resp.Account.ID != 42 || resp.Profile.Nickname != "nick" || resp.Account.VipType != 11 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestLoginRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":502,"message":"wrong password"}`)
	})

	_, err := c.LoginCellphone(context.Background(), "10086", "bad")
	if !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestCookiesAreReplayed(t *testing.T) {
	var sawCookie bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login/cellphone":
			http.SetCookie(w, &http.Cookie{Name: "MUSIC_U", Value: "session", Path: "/"})
			fmt.Fprint(w, `{"code":200,"account":{"id":1},"profile":{"userId":1}}`)
		case "/likelist":
			if ck, err := r.Cookie("MUSIC_U"); err == nil && ck.Value == "session" {
				sawCookie = true
			}
			fmt.Fprint(w, `{"code":200,"ids":[3,1,2]}`)
		}
	})

	ctx := context.Background()
	if _, err := c.LoginCellphone(ctx, "p", "pw"); err != nil {
		t.Fatalf("LoginCellphone: %v", err)
	}
	ids, err := c.LikeList(ctx, 1)
	if err != nil {
		t.Fatalf("LikeList: %v", err)
	}
	if len(ids) != 3 || ids[0] != 3 {
		t.Errorf("unexpected ids %v", ids)
	}
	if !sawCookie {
		t.Errorf("expected session cookie on follow-up request")
	}
}

func TestPlaylistsAndDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/playlist":
			if r.URL.Query().Get("uid") != "7" {
				t.Errorf("unexpected uid %q", r.URL.Query().Get("uid"))
			}
			fmt.Fprint(w, `{"code":200,"playlist":[{"id":10,"name":"Liked","trackCount":2,"coverImgUrl":"http://img/1.jpg","creator":{"nickname":"me","userId":7}}]}`)
		case "/playlist/detail":
			fmt.Fprint(w, `{"code":200,"playlist":{"id":10,"name":"Liked","tracks":[{"id":1,"name":"A","ar":[{"id":5,"name":"X"}],"al":{"id":9,"name":"Al","picUrl":"http://img/a.jpg"},"dt":215000}]}}`)
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	lists, err := c.UserPlaylists(ctx, 7)
	if err != nil {
		t.Fatalf("UserPlaylists: %v", err)
	}
	if len(lists) != 1 || lists[0].Creator.Nickname != "me" || lists[0].TrackCount != 2 {
		t.Errorf("unexpected playlists %+v", lists)
	}

	detail, err := c.PlaylistDetail(ctx, 10)
	if err != nil {
		t.Fatalf("PlaylistDetail: %v", err)
	}
	if len(detail.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(detail.Tracks))
	}
	track := detail.Tracks[0]
	if track.Dt != 215000 || track.Ar[0].Name != "X" || track.Al.PicURL != "http://img/a.jpg" {
		t.Errorf("unexpected track %+v", track)
	}
}

func TestSongURLsJoinsIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "1,2" {
			t.Errorf("expected id=1,2, got %q", got)
		}
		fmt.Fprint(w, `{"code":200,"data":[{"id":1,"url":"http://cdn/1.mp3","size":100,"br":320000,"md5":"abc"},{"id":2,"url":null}]}`)
	})

	urls, err := c.SongURLs(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("SongURLs: %v", err)
	}
	if urls[0].URL != "http://cdn/1.mp3" || urls[0].Br != 320000 || urls[1].URL != "" {
		t.Errorf("unexpected urls %+v", urls)
	}
}

func TestLyricAndLike(t *testing.T) {
	var liked string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lyric":
			fmt.Fprint(w, `{"code":200,"lrc":{"lyric":"[00:01.00]hi\n"}}`)
		case "/like":
			liked = r.URL.Query().Get("like")
			fmt.Fprint(w, `{"code":200}`)
		}
	})

	ctx := context.Background()
	text, err := c.Lyric(ctx, 1)
	if err != nil || text != "[00:01.00]hi\n" {
		t.Errorf("unexpected lyric %q, %v", text, err)
	}
	if err := c.Like(ctx, 1, false); err != nil {
		t.Fatalf("Like: %v", err)
	}
	if liked != "false" {
		t.Errorf("expected like=false, got %q", liked)
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}, domain.ErrNetwork},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"code":`)
		}, domain.ErrParse},
		{"non-ok code", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"code":301}`)
		}, domain.ErrNetwork},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.handler)
			_, err := c.UserPlaylists(context.Background(), 1)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := Init(addr, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.LikeList(context.Background(), 1); !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
}

func TestMediaClientOutlivesTheAPITimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for i := 0; i < 6; i++ {
			fmt.Fprint(w, "0123456789")
			flusher.Flush()
			time.Sleep(50 * time.Millisecond)
		}
	}))
	t.Cleanup(server.Close)

	c, err := Init(server.URL, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	media := c.MediaClient()
	if media.Timeout != 0 || media.Jar != c.HttpClient.Jar {
		t.Fatalf("media client must share the jar and have no overall timeout")
	}

	resp, err := media.Get(server.URL + "/song.flac")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("a slow but healthy download must complete: %v", err)
	}
	if len(body) != 60 {
		t.Errorf("expected 60 bytes, got %d", len(body))
	}
}
