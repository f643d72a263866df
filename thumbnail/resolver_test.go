package thumbnail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveYouTubeSynthesized(t *testing.T) {
	r := NewResolver()

	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ": "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		"https://youtu.be/dQw4w9WgXcQ":                "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		"https://www.youtube.com/shorts/abc123XYZ_-":  "https://img.youtube.com/vi/abc123XYZ_-/hqdefault.jpg",
	}
	for in, want := range cases {
		got := r.Resolve(context.Background(), in)
		assert.Equal(t, want, got, in)
	}
}

func TestResolveTikTokOEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"thumbnail_url": "https://cdn.example.com/t.jpg"})
	}))
	defer srv.Close()

	r := NewResolver()
	r.TikTokOEmbedBase = srv.URL

	got := r.Resolve(context.Background(), "https://www.tiktok.com/@user/video/123")
	assert.Equal(t, "https://cdn.example.com/t.jpg", got)
}

func TestResolveTikTokFailureFallsThrough(t *testing.T) {
	// TikTok oEmbed answers 500; the generic fallback still gets a chance.
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oembed down", http.StatusInternalServerError)
	}))
	defer failing.Close()
	noembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"thumbnail_url": "https://noembed.example.com/t.jpg"})
	}))
	defer noembed.Close()

	r := NewResolver()
	r.TikTokOEmbedBase = failing.URL
	r.NoembedBase = noembed.URL

	got := r.Resolve(context.Background(), "https://www.tiktok.com/@user/video/123")
	assert.Equal(t, "https://noembed.example.com/t.jpg", got)
}

func TestResolvePageMeta(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><meta property="og:image" content="https://cdn.example.com/og.png"></head><body></body></html>`))
	}))
	defer page.Close()
	noembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer noembed.Close()

	r := NewResolver()
	r.NoembedBase = noembed.URL

	got := r.Resolve(context.Background(), page.URL+"/article")
	assert.Equal(t, "https://cdn.example.com/og.png", got)
}

func TestResolveImageExtension(t *testing.T) {
	noembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer noembed.Close()

	r := NewResolver()
	r.NoembedBase = noembed.URL
	// page fetch will fail too (unreachable host), leaving only the
	// extension check
	got := r.Resolve(context.Background(), "https://img.invalid.example/poster.JPG")
	assert.Equal(t, "https://img.invalid.example/poster.JPG", got)
}

func TestResolveTotalFailureYieldsEmpty(t *testing.T) {
	noembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer noembed.Close()

	r := NewResolver()
	r.NoembedBase = noembed.URL

	assert.Equal(t, "", r.Resolve(context.Background(), "https://site.invalid.example/page"))
	assert.Equal(t, "", r.Resolve(context.Background(), ""))
	assert.Equal(t, "", r.Resolve(context.Background(), "not a url"))
}
