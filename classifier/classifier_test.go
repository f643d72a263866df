package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResponse(t *testing.T) {
	raw := `{
		"title": " UGC skincare routine ",
		"description": "A creator walks through a morning skincare routine.",
		"tags": ["UGC", "tutorial", "UGC"],
		"format": ["vertical", "9:16"],
		"content_type": ["UGC", "tutorial"],
		"mood": [" natural ", ""]
	}`

	res, err := ParseResponse(raw)
	assert.NoError(t, err)
	assert.Equal(t, "UGC skincare routine", res.Title)
	assert.Equal(t, "A creator walks through a morning skincare routine.", res.Description)
	// duplicates removed, order preserved
	assert.Equal(t, []string{"UGC", "tutorial"}, res.TagSet.Tags)
	assert.Equal(t, []string{"vertical", "9:16"}, res.TagSet.Format)
	// values trimmed, empties dropped
	assert.Equal(t, []string{"natural"}, res.TagSet.Mood)
	assert.Empty(t, res.TagSet.Effects)
}

func TestParseResponseToleratesCodeFence(t *testing.T) {
	raw := "```json\n{\"title\":\"Neon promo\",\"tags\":[\"neon\"]}\n```"

	res, err := ParseResponse(raw)
	assert.NoError(t, err)
	assert.Equal(t, "Neon promo", res.Title)
	assert.Equal(t, []string{"neon"}, res.TagSet.Tags)
}

func TestParseResponseMalformed(t *testing.T) {
	_, err := ParseResponse("sorry, I cannot help with that")
	assert.Error(t, err)
}

func TestBuildPromptEmbedsLiteralInputs(t *testing.T) {
	p := buildPrompt("https://example.com/video", "great tutorial")
	assert.Equal(t, "Content URL: https://example.com/video\nUser note: great tutorial", p)

	p = buildPrompt("", "")
	assert.Equal(t, "Content URL: (no URL)\nUser note: (none)", p)
}
