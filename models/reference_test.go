package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagSetNormalize(t *testing.T) {
	ts := TagSet{
		Tags:   []string{" neon ", "neon", "", "retro"},
		Format: []string{"vertical", "vertical"},
		Mood:   []string{"  "},
	}
	ts.Normalize()

	assert.Equal(t, []string{"neon", "retro"}, ts.Tags)
	assert.Equal(t, []string{"vertical"}, ts.Format)
	assert.Empty(t, ts.Mood)
	// untouched categories become empty, not nil panics
	assert.Empty(t, ts.Effects)
}
