package domain

import "github.com/pkg/errors"

// Error taxonomy shared by the catalog, the cache and the engine.
// Callers wrap these with errors.Wrap and test with errors.Is.
var (
	ErrAuth             = errors.New("authentication failed")
	ErrNetwork          = errors.New("network error")
	ErrUnavailableTrack = errors.New("track unavailable")
	ErrParse            = errors.New("malformed response")
	ErrIO               = errors.New("filesystem error")
)
