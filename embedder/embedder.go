package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"refdeck/config"
)

// Client is an OpenAI-compatible embeddings client. One POST per call; no
// retry, caching or batching.
type Client struct {
	baseURL  string
	model    string
	maxChars int
	apiKey   func() string
	client   *http.Client
}

type Config struct {
	BaseURL  string
	Model    string
	MaxChars int
	Timeout  time.Duration
	// APIKey is read per call so a key added to the environment after
	// startup is picked up, and a missing key fails at call time.
	APIKey func() string
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-large"
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = 8000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.APIKey == nil {
		cfg.APIKey = config.OpenAIAPIKey
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		model:    cfg.Model,
		maxChars: cfg.MaxChars,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// FromAppConfig builds a client from the loaded application config.
func FromAppConfig(cfg config.EmbeddingConfig) *Client {
	return NewClient(Config{
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
		MaxChars: cfg.MaxChars,
		Timeout:  time.Duration(cfg.TimeoutMs) * time.Millisecond,
	})
}

// Embed returns the embedding vector for the given text, truncated to the
// configured input bound.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	key := c.apiKey()
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable is not set")
	}

	text = truncate(text, c.maxChars)

	body, _ := json.Marshal(map[string]any{
		"input": text,
		"model": c.model,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embeddings request failed: %s", resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return out.Data[0].Embedding, nil
}

func truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
