package world

import (
	"net/url"
	"strings"
)

// VideoIDFromURL extracts the YouTube video id from a stored video URL.
// Watch URLs (v= query parameter, including playlist-qualified links),
// youtu.be short links, and /embed/ paths are recognized; anything else is
// rejected rather than guessed at.
func VideoIDFromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	if id := u.Query().Get("v"); isVideoID(id) {
		return id, true
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	path := strings.Trim(u.Path, "/")
	switch {
	case host == "youtu.be":
		if isVideoID(path) {
			return path, true
		}
	case strings.HasPrefix(path, "embed/"):
		if id := strings.TrimPrefix(path, "embed/"); isVideoID(id) {
			return id, true
		}
	}
	return "", false
}

// YouTube video ids are 11 characters from [A-Za-z0-9_-].
func isVideoID(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
