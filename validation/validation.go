package validation

import (
	"net/url"
	"strings"
)

// ExtractVideoID resolves the command-line argument to a video id.
// Watch, short-link, embed and shorts URLs yield the id they carry;
// anything else is returned trimmed but otherwise untouched, so a
// malformed id is reported by YouTube rather than rejected here.
func ExtractVideoID(input string) string {
	input = strings.TrimSpace(input)

	raw := input
	if !strings.Contains(raw, "://") && looksLikeYouTubeHost(raw) {
		raw = "https://" + raw
	}

	parsedURL, err := url.Parse(raw)
	if err != nil || parsedURL.Host == "" {
		return input
	}

	host := strings.TrimPrefix(strings.ToLower(parsedURL.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	switch host {
	case "youtu.be":
		if id := firstSegment(parsedURL.Path); id != "" {
			return id
		}
	case "youtube.com", "youtube-nocookie.com", "music.youtube.com":
		if v := parsedURL.Query().Get("v"); v != "" {
			return v
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/", "/v/"} {
			if strings.HasPrefix(parsedURL.Path, prefix) {
				if id := firstSegment(strings.TrimPrefix(parsedURL.Path, prefix)); id != "" {
					return id
				}
			}
		}
	}

	return input
}

func looksLikeYouTubeHost(s string) bool {
	lower := strings.ToLower(s)
	for _, prefix := range []string{"youtube.com/", "www.youtube.com/", "m.youtube.com/", "youtu.be/"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}
