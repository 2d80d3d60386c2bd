package netease

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yhkl-dev/EaseCLI/domain"
	"github.com/yhkl-dev/EaseCLI/logging"
	"golang.org/x/net/publicsuffix"
)

const codeOK = 200

// Client talks to a NetEase-compatible music API. Session cookies set by the
// login endpoint are kept in the client's jar and sent on every later call.
type Client struct {
	BaseURL    string
	HttpClient *http.Client
	log        *logrus.Entry
}

// Init builds a client with a cookie jar and the given request timeout
func Init(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HttpClient: &http.Client{Jar: jar, Timeout: timeout},
		log:        logging.For("netease"),
	}, nil
}

// MediaClient returns a client for downloading audio files. It shares the
// session jar but has no deadline on the whole transfer, since a lossless
// track can take minutes to arrive; the request context cancels it. The API
// timeout still bounds the wait for response headers.
func (c *Client) MediaClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = c.HttpClient.Timeout
	return &http.Client{Jar: c.HttpClient.Jar, Transport: transport}
}

// get issues GET BaseURL+path?params and decodes the JSON body into out.
// Transport failures wrap domain.ErrNetwork and decode failures wrap
// domain.ErrParse. The HTTP status is not checked here: the API reports
// failures through the "code" field, which callers inspect.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	requestURL := c.BaseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.Wrapf(domain.ErrNetwork, "build request %s: %v", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return errors.Wrapf(domain.ErrNetwork, "GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(domain.ErrNetwork, "read %s: %v", path, err)
	}
	c.log.WithFields(logrus.Fields{
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Debug("request done")

	if resp.StatusCode >= http.StatusInternalServerError {
		return errors.Wrapf(domain.ErrNetwork, "GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(domain.ErrParse, "decode %s: %v", path, err)
	}
	return nil
}

func checkCode(path string, code int, message string) error {
	if code == codeOK {
		return nil
	}
	if message == "" {
		message = fmt.Sprintf("code %d", code)
	}
	return errors.Wrapf(domain.ErrNetwork, "%s: %s", path, message)
}
