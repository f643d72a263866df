package slack

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// SplitCommandText extracts the first HTTP(S) URL occurring anywhere in the
// command argument. The note is the input with that substring removed and
// trimmed. Without a URL match the whole trimmed input is the note.
func SplitCommandText(text string) (url, note string) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return "", ""
	}

	url = urlPattern.FindString(raw)
	if url == "" {
		return "", raw
	}
	note = strings.TrimSpace(strings.Replace(raw, url, "", 1))
	return url, note
}
