package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"refdeck/config"
)

// Metadata is the payload stored alongside each vector: enough to render a
// search result without a second Mongo lookup.
type Metadata struct {
	ReferenceID string   `json:"reference_id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Format      []string `json:"format"`
}

// SearchResult is one similarity match.
type SearchResult struct {
	Score    float64
	Metadata Metadata
}

// Storage is a minimal REST client to Qdrant assuming cosine distance.
type Storage struct {
	url        string
	apiKey     func() string
	collection string
	client     *http.Client
}

type Config struct {
	URL        string
	Collection string
	Timeout    time.Duration
	APIKey     func() string
}

func NewStorage(cfg Config) *Storage {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Collection == "" {
		cfg.Collection = "references"
	}
	if cfg.APIKey == nil {
		cfg.APIKey = config.QdrantAPIKey
	}
	return &Storage{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

// Enabled reports whether a Qdrant endpoint is configured at all. The
// embedding subsystem is optional; without an endpoint the add pipeline
// skips vectors entirely and search reports it is unavailable.
func (s *Storage) Enabled() bool { return s.url != "" }

// PointID derives a deterministic UUID from a reference's ObjectID hex.
// Qdrant point ids must be UUIDs; deriving keeps upserts keyed by the
// document identifier so re-upserting the same reference overwrites.
func PointID(referenceID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(referenceID)).String()
}

// EnsureCollection creates the collection when it does not exist yet.
// Qdrant answers 409 for a create against an existing collection, so
// existence is checked first and a lost create race still counts as done.
func (s *Storage) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	collURL := fmt.Sprintf("%s/collections/%s", s.url, s.collection)

	exists, err := s.collectionExists(ctx, collURL)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.createCollection(ctx, collURL, dimension)
}

func (s *Storage) collectionExists(ctx context.Context, collURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, collURL, nil)
	if err != nil {
		return false, err
	}
	if key := s.apiKey(); key != "" {
		req.Header.Set("api-key", key)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 300:
		return false, fmt.Errorf("qdrant GET %s failed: %s", collURL, resp.Status)
	}
	return true, nil
}

func (s *Storage) createCollection(ctx context.Context, collURL string, dimension int) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, collURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if key := s.apiKey(); key != "" {
		req.Header.Set("api-key", key)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// another writer created it between the existence check and the create
	if resp.StatusCode == http.StatusConflict {
		return nil
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", collURL, resp.Status)
	}
	return nil
}

// Upsert writes one vector keyed by the reference id.
func (s *Storage) Upsert(ctx context.Context, referenceID string, vector []float64, meta Metadata) error {
	if !s.Enabled() {
		return errors.New("vector store is not configured")
	}
	meta.ReferenceID = referenceID
	body := map[string]any{
		"points": []map[string]any{
			{
				"id":      PointID(referenceID),
				"vector":  vector,
				"payload": meta,
			},
		},
	}
	return s.send(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body, nil)
}

// Search runs a top-K similarity query and decodes payloads back into
// result metadata.
func (s *Storage) Search(ctx context.Context, vector []float64, topK int) ([]SearchResult, error) {
	if !s.Enabled() {
		return nil, errors.New("vector store is not configured")
	}
	if topK <= 0 {
		topK = 5
	}
	body := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float64  `json:"score"`
			Payload Metadata `json:"payload"`
		} `json:"result"`
	}
	if err := s.send(ctx, http.MethodPost, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), body, &resp); err != nil {
		return nil, err
	}
	results := make([]SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		results = append(results, SearchResult{Score: r.Score, Metadata: r.Payload})
	}
	return results, nil
}

func (s *Storage) send(ctx context.Context, method, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if key := s.apiKey(); key != "" {
		req.Header.Set("api-key", key)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
