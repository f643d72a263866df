package slack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCommandText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantURL  string
		wantNote string
	}{
		{
			name:     "url first then note",
			input:    "https://example.com/video great tutorial",
			wantURL:  "https://example.com/video",
			wantNote: "great tutorial",
		},
		{
			name:     "url embedded mid-text",
			input:    "check this https://vt.tiktok.com/xyz/ out, very neon",
			wantURL:  "https://vt.tiktok.com/xyz/",
			wantNote: "check this  out, very neon",
		},
		{
			name:     "no url",
			input:    "  a carousel with bold typography  ",
			wantURL:  "",
			wantNote: "a carousel with bold typography",
		},
		{
			name:     "url only",
			input:    "http://example.com/a",
			wantURL:  "http://example.com/a",
			wantNote: "",
		},
		{
			name:     "first of two urls wins",
			input:    "https://a.example/one and https://b.example/two",
			wantURL:  "https://a.example/one",
			wantNote: "and https://b.example/two",
		},
		{
			name:     "empty input",
			input:    "   ",
			wantURL:  "",
			wantNote: "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			url, note := SplitCommandText(testCase.input)
			assert.Equal(t, testCase.wantURL, url)
			assert.Equal(t, testCase.wantNote, note)
		})
	}
}
