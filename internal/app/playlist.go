package app

import (
	"net/url"
	"strings"
)

const playlistSuffix = ".m3u8"

// IsPlaylistURL reports whether rawURL names an HLS playlist. The query
// string is ignored.
func IsPlaylistURL(rawURL string) bool {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	return strings.HasSuffix(strings.ToLower(p), playlistSuffix)
}

// PlaylistBase returns rawURL up to and including its last '/'
func PlaylistBase(rawURL string) string {
	if idx := strings.LastIndex(rawURL, "/"); idx >= 0 {
		return rawURL[:idx+1]
	}
	return ""
}

// ParsePlaylist extracts segment URLs in playlist order. Blank lines and
// lines starting with '#' are skipped; directives are not interpreted.
// Relative references are appended to base.
func ParsePlaylist(content, base string) []string {
	var segments []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if isAbsolute(line) {
			segments = append(segments, line)
		} else {
			segments = append(segments, base+line)
		}
	}
	return segments
}

func isAbsolute(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
