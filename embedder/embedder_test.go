package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbed(t *testing.T) {
	var gotInput string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/embeddings", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		var body struct {
			Input string `json:"input"`
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotInput = body.Input

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float64{0.1, 0.2, 0.3}}},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{
		BaseURL:  srv.URL,
		Model:    "test-model",
		MaxChars: 10,
		APIKey:   func() string { return "sk-test" },
	})

	vec, err := c.Embed(context.Background(), "0123456789ABCDEF")
	assert.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	// input truncated to the configured bound
	assert.Equal(t, "0123456789", gotInput)
}

func TestEmbedMissingKeyFailsAtCallTime(t *testing.T) {
	c := NewClient(Config{APIKey: func() string { return "" }})
	_, err := c.Embed(context.Background(), "anything")
	assert.Error(t, err)
}

func TestEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: func() string { return "sk-test" }})
	_, err := c.Embed(context.Background(), "anything")
	assert.Error(t, err)
}

func TestEmbedEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: func() string { return "sk-test" }})
	_, err := c.Embed(context.Background(), "anything")
	assert.Error(t, err)
}
