// Package cache keeps downloaded tracks on disk so a track is fetched once.
package cache

import (
	"context"
	"io"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/yhkl-dev/EaseCLI/domain"
	"github.com/yhkl-dev/EaseCLI/logging"
	"golang.org/x/sync/singleflight"
)

// MediaCache maps a filename under dir to a complete local copy of a URL.
// A file that exists under its final name is always complete: downloads go
// to a temporary name and are renamed once fully written.
type MediaCache struct {
	fs     afero.Fs
	dir    string
	client *http.Client
	group  singleflight.Group
	log    *logrus.Entry
}

// New returns a cache rooted at dir. A nil client uses http.DefaultClient.
func New(fs afero.Fs, dir string, client *http.Client) *MediaCache {
	if client == nil {
		client = http.DefaultClient
	}
	return &MediaCache{
		fs:     fs,
		dir:    dir,
		client: client,
		log:    logging.For("cache"),
	}
}

// Dir is the directory files are stored in
func (c *MediaCache) Dir() string {
	return c.dir
}

// Path returns where filename is stored, whether or not it exists yet
func (c *MediaCache) Path(filename string) string {
	return filepath.Join(c.dir, filename)
}

// Has reports whether filename is already cached
func (c *MediaCache) Has(filename string) bool {
	ok, err := afero.Exists(c.fs, c.Path(filename))
	return err == nil && ok
}

// Fetch returns the local path of filename, downloading url first if the
// file is not cached. Concurrent fetches of the same filename share one
// download. Every failure wraps domain.ErrUnavailableTrack.
func (c *MediaCache) Fetch(ctx context.Context, url, filename string) (string, error) {
	path := c.Path(filename)
	if c.Has(filename) {
		c.log.WithField("path", path).Debug("cache hit")
		return path, nil
	}

	_, err, _ := c.group.Do(path, func() (any, error) {
		if c.Has(filename) {
			return nil, nil
		}
		return nil, c.download(ctx, url, path)
	})
	if err != nil {
		return "", errors.Wrap(domain.ErrUnavailableTrack, err.Error())
	}
	return path, nil
}

func (c *MediaCache) download(ctx context.Context, url, path string) error {
	if err := c.fs.MkdirAll(c.dir, 0o755); err != nil {
		return errors.Wrapf(domain.ErrIO, "create %s: %v", c.dir, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(domain.ErrNetwork, "build request: %v", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(domain.ErrNetwork, "download %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(domain.ErrNetwork, "download %s: unexpected status %d", url, resp.StatusCode)
	}

	part := path + ".part-" + uuid.New().String()
	f, err := c.fs.Create(part)
	if err != nil {
		return errors.Wrapf(domain.ErrIO, "create %s: %v", part, err)
	}

	n, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = c.fs.Remove(part)
		if copyErr != nil {
			return errors.Wrapf(domain.ErrNetwork, "download %s: %v", url, copyErr)
		}
		return errors.Wrapf(domain.ErrIO, "close %s: %v", part, closeErr)
	}

	if err := c.fs.Rename(part, path); err != nil {
		_ = c.fs.Remove(part)
		return errors.Wrapf(domain.ErrIO, "rename %s: %v", part, err)
	}

	c.log.WithFields(logrus.Fields{"path": path, "bytes": n}).Info("cached track")
	return nil
}
