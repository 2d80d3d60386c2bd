package coverart

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/yhkl-dev/EaseCLI/domain"
)

func pngBytes() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func TestConvertFromURL(t *testing.T) {
	Convey("Given a cover server", t, func() {
		var hits int32
		cover := pngBytes()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			switch r.URL.Path {
			case "/cover.png":
				w.Header().Set("Content-Type", "image/png")
				_, _ = w.Write(cover)
			case "/broken.png":
				_, _ = w.Write([]byte("not an image"))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		c := NewConverter(srv.Client())
		ctx := context.Background()

		Convey("An empty URL gives the placeholder without a request", func() {
			art, err := c.ConvertFromURL(ctx, "")
			So(err, ShouldBeNil)
			So(art, ShouldEqual, Placeholder())
			So(atomic.LoadInt32(&hits), ShouldEqual, 0)
		})

		Convey("A PNG is converted once and then memoised", func() {
			art, err := c.ConvertFromURL(ctx, srv.URL+"/cover.png")
			So(err, ShouldBeNil)
			So(art, ShouldNotBeEmpty)
			So(art, ShouldNotEqual, Placeholder())

			again, err := c.ConvertFromURL(ctx, srv.URL+"/cover.png")
			So(err, ShouldBeNil)
			So(again, ShouldEqual, art)
			So(atomic.LoadInt32(&hits), ShouldEqual, 1)
		})

		Convey("A missing cover is a network error", func() {
			art, err := c.ConvertFromURL(ctx, srv.URL+"/missing.png")
			So(errors.Is(err, domain.ErrNetwork), ShouldBeTrue)
			So(art, ShouldEqual, Placeholder())
		})

		Convey("Garbage bytes are a parse error", func() {
			_, err := c.ConvertFromURL(ctx, srv.URL+"/broken.png")
			So(errors.Is(err, domain.ErrParse), ShouldBeTrue)
		})
	})
}
