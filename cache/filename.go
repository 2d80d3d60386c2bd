package cache

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const defaultExt = "mp3"

var invalidChars = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_", "\x00", "_",
)

// Extension returns the file extension of the resource behind rawURL,
// without the dot. Query strings and host names are ignored. Falls back to
// "mp3".
func Extension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultExt
	}
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	if ext == "" {
		return defaultExt
	}
	return strings.ToLower(ext)
}

// FileName composes "<name>-<id>.<ext>" for a track, with the extension
// taken from its media URL. The id keeps tracks that share a name apart.
// Characters that are not allowed in file names become "_". An empty name
// leaves just the track id.
func FileName(name string, id int64, rawURL string) string {
	safe := strings.TrimSpace(invalidChars.Replace(norm.NFC.String(name)))
	safe = strings.Trim(safe, ".")
	base := strconv.FormatInt(id, 10)
	if safe != "" {
		base = safe + "-" + base
	}
	return base + "." + Extension(rawURL)
}
