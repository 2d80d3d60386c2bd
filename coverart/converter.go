package coverart

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/qeesung/image2ascii/convert"
	"github.com/sirupsen/logrus"
	"github.com/yhkl-dev/EaseCLI/domain"
	"github.com/yhkl-dev/EaseCLI/logging"
)

const (
	artWidth  = 25
	artHeight = 12
)

// Converter renders playlist covers as ASCII art for the detail view
type Converter struct {
	httpClient *http.Client
	converter  *convert.ImageConverter
	log        *logrus.Entry

	mu   sync.Mutex
	memo map[string]string
}

// NewConverter uses client for downloads, or a 10s-timeout client when nil
func NewConverter(client *http.Client) *Converter {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Converter{
		httpClient: client,
		converter:  convert.NewImageConverter(),
		log:        logging.For("coverart"),
		memo:       map[string]string{},
	}
}

// ConvertFromURL downloads the image at url and converts it to ASCII art.
// On any failure the placeholder is returned together with the error.
func (c *Converter) ConvertFromURL(ctx context.Context, url string) (string, error) {
	if url == "" {
		return Placeholder(), nil
	}

	c.mu.Lock()
	art, ok := c.memo[url]
	c.mu.Unlock()
	if ok {
		return art, nil
	}

	art, err := c.download(ctx, url)
	if err != nil {
		c.log.WithError(err).WithField("url", url).Debug("cover art unavailable")
		return Placeholder(), err
	}

	c.mu.Lock()
	c.memo[url] = art
	c.mu.Unlock()
	return art, nil
}

func (c *Converter) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(domain.ErrNetwork, err.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(domain.ErrNetwork, "download cover: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(domain.ErrNetwork, "download cover: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return "", errors.Wrapf(domain.ErrParse, "decode cover: %v", err)
	}

	opts := convert.DefaultOptions
	opts.FixedWidth = artWidth
	opts.FixedHeight = artHeight
	opts.Colored = false // tview does not understand ANSI escapes

	return c.converter.Image2ASCIIString(img, &opts), nil
}

// Placeholder is shown when a cover cannot be loaded
func Placeholder() string {
	return `[darkgray]┌───────────────────────┐
[darkgray]│                       │
[darkgray]│                       │
[darkgray]│                       │
[darkgray]│        ♫  ♪  ♫        │
[darkgray]│       No  Cover       │
[darkgray]│        ♫  ♪  ♫        │
[darkgray]│                       │
[darkgray]│                       │
[darkgray]│                       │
[darkgray]└───────────────────────┘`
}
