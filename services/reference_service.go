package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"refdeck/classifier"
	"refdeck/internal/logger"
	"refdeck/models"
	"refdeck/slack"
	"refdeck/vectorstore"
)

const (
	defaultTitle       = "Untitled reference"
	defaultDescription = "Reference added without description."
	titleMaxRunes      = 80
	tagsPreviewCount   = 6
)

// Classifier tags a reference from its URL and note. Implementations
// absorb their own failures and fall back to the zero Result.
type Classifier interface {
	Classify(ctx context.Context, url, note string) classifier.Result
}

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// VectorStore persists and queries embeddings.
type VectorStore interface {
	Enabled() bool
	EnsureCollection(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, referenceID string, vector []float64, meta vectorstore.Metadata) error
	Search(ctx context.Context, vector []float64, topK int) ([]vectorstore.SearchResult, error)
}

// ReferenceStore persists reference documents.
type ReferenceStore interface {
	Insert(ctx context.Context, ref *models.Reference) (string, error)
	List(ctx context.Context, page, pageSize int) ([]models.Reference, int64, error)
	FindSmartAnalyze(ctx context.Context, limit int) ([]models.Reference, error)
	UpdateTagSet(ctx context.Context, id primitive.ObjectID, ts models.TagSet) error
}

// ThumbnailResolver finds a preview image for a URL, best-effort.
type ThumbnailResolver interface {
	Resolve(ctx context.Context, rawURL string) string
}

// ReferenceService wires the add/search/enrich pipelines. Each pipeline is
// a sequential chain of blocking external calls; non-fatal steps absorb
// their failures so the primary action still completes.
type ReferenceService struct {
	classifier Classifier
	embedder   Embedder
	vectors    VectorStore
	store      ReferenceStore
	thumbnails ThumbnailResolver

	topK        int
	maxResults  int
	enrichBatch int
}

type Options struct {
	Classifier Classifier
	Embedder   Embedder
	Vectors    VectorStore
	Store      ReferenceStore
	Thumbnails ThumbnailResolver

	TopK        int
	MaxResults  int
	EnrichBatch int
}

func NewReferenceService(opts Options) *ReferenceService {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 3
	}
	if opts.EnrichBatch <= 0 {
		opts.EnrichBatch = 5
	}
	return &ReferenceService{
		classifier:  opts.Classifier,
		embedder:    opts.Embedder,
		vectors:     opts.Vectors,
		store:       opts.Store,
		thumbnails:  opts.Thumbnails,
		topK:        opts.TopK,
		maxResults:  opts.MaxResults,
		enrichBatch: opts.EnrichBatch,
	}
}

// AddReference runs the full add pipeline: split URL/note, classify,
// resolve a thumbnail, persist, optionally embed and upsert the vector,
// and format the confirmation reply.
func (s *ReferenceService) AddReference(ctx context.Context, text, userName string) (slack.Message, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return slack.Ephemeral("Usage: `/addref URL [description]`"), nil
	}

	url, note := slack.SplitCommandText(raw)

	// Classification failure degrades to an empty record; the reference
	// is still created.
	cls := s.classifier.Classify(ctx, url, note)
	cls.TagSet.Normalize()

	title := cls.Title
	if title == "" {
		title = truncateRunes(note, titleMaxRunes)
	}
	if title == "" {
		title = defaultTitle
	}

	description := cls.Description
	if description == "" {
		description = note
		if description == "" {
			description = defaultDescription
		}
		description += fmt.Sprintf("\n\nAdded by %s from Slack.", userName)
	}

	ref := &models.Reference{
		Title:        title,
		URL:          url,
		Description:  description,
		AddedBy:      userName,
		TagSet:       cls.TagSet,
		ThumbnailURL: s.thumbnails.Resolve(ctx, url),
	}

	id, err := s.store.Insert(ctx, ref)
	if err != nil {
		return slack.Message{}, fmt.Errorf("failed to store reference: %w", err)
	}

	if s.vectors.Enabled() {
		s.upsertVector(ctx, id, ref)
	}

	return s.addedReply(userName, ref), nil
}

// upsertVector embeds the reference and writes it to the vector store.
/// Failures are logged only: the document already exists and the command
// must still confirm.
func (s *ReferenceService) upsertVector(ctx context.Context, id string, ref *models.Reference) {
	vec, err := s.embedder.Embed(ctx, embeddingInput(ref))
	if err != nil {
		logger.Log.Warnf("embedding failed for reference %s: %v", id, err)
		return
	}
	if err := s.vectors.EnsureCollection(ctx, len(vec)); err != nil {
		logger.Log.Warnf("vector collection check failed: %v", err)
		return
	}
	meta := vectorstore.Metadata{
		Title:       ref.Title,
		URL:         ref.URL,
		Description: ref.Description,
		Tags:        ref.TagSet.Tags,
		Format:      ref.TagSet.Format,
	}
	if err := s.vectors.Upsert(ctx, id, vec, meta); err != nil {
		logger.Log.Warnf("vector upsert failed for reference %s: %v", id, err)
	}
}

func embeddingInput(ref *models.Reference) string {
	parts := []string{ref.Title, ref.Description}
	if len(ref.TagSet.Tags) > 0 {
		parts = append(parts, strings.Join(ref.TagSet.Tags, ", "))
	}
	return strings.Join(parts, "\n")
}

func (s *ReferenceService) addedReply(userName string, ref *models.Reference) slack.Message {
	urlField := "_(none)_"
	if ref.URL != "" {
		urlField = ref.URL
	}
	tagsPreview := "No tags detected"
	if len(ref.TagSet.Tags) > 0 {
		preview := ref.TagSet.Tags
		if len(preview) > tagsPreviewCount {
			preview = preview[:tagsPreviewCount]
		}
		tagsPreview = strings.Join(preview, ", ")
	}

	blocks := []slack.Block{
		slack.Section(fmt.Sprintf(":white_check_mark: *Reference added* by *%s*", userName)),
		slack.SectionFields(
			slack.Mrkdwn(fmt.Sprintf("*Title*\n%s", ref.Title)),
			slack.Mrkdwn(fmt.Sprintf("*URL*\n%s", urlField)),
			slack.Mrkdwn(fmt.Sprintf("*Tags detected*\n%s", tagsPreview)),
		),
	}
	return slack.EphemeralBlocks("Reference added.", blocks)
}

// SearchReferences embeds the query and renders the top similarity matches.
func (s *ReferenceService) SearchReferences(ctx context.Context, query, userName string) (slack.Message, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return slack.Ephemeral("Usage: `/ref <search terms>`"), nil
	}

	// without a vector store there is nothing to search; bail before
	// paying for a query embedding
	if !s.vectors.Enabled() {
		return slack.Message{}, errors.New("vector store is not configured; semantic search is unavailable")
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return slack.Message{}, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := s.vectors.Search(ctx, vec, s.topK)
	if err != nil {
		return slack.Message{}, fmt.Errorf("vector search failed: %w", err)
	}
	if len(matches) == 0 {
		return slack.Ephemeral(fmt.Sprintf("Nothing found for \"%s\".", query)), nil
	}

	if len(matches) > s.maxResults {
		matches = matches[:s.maxResults]
	}
	blocks := []slack.Block{
		slack.Section(fmt.Sprintf(":mag: *Results for* \"%s\"", query)),
	}
	for _, m := range matches {
		blocks = append(blocks, slack.Section(formatMatch(m)))
	}
	return slack.EphemeralBlocks(fmt.Sprintf("Results for \"%s\"", query), blocks), nil
}

func formatMatch(m vectorstore.SearchResult) string {
	var b strings.Builder
	title := m.Metadata.Title
	if title == "" {
		title = defaultTitle
	}
	fmt.Fprintf(&b, "*%s*", title)
	if m.Metadata.Description != "" {
		fmt.Fprintf(&b, "\n%s", m.Metadata.Description)
	}
	if m.Metadata.URL != "" {
		fmt.Fprintf(&b, "\n<%s|Open>", m.Metadata.URL)
	}
	if len(m.Metadata.Tags) > 0 {
		fmt.Fprintf(&b, "\nTags: %s", strings.Join(m.Metadata.Tags, ", "))
	}
	return b.String()
}

// EnrichPending re-classifies references flagged smart_analyze from their
// stored title and description, replacing the tag set and clearing the
// flag. Per-document failures are logged and skipped so one bad document
// does not stall the batch.
func (s *ReferenceService) EnrichPending(ctx context.Context) ([]string, error) {
	refs, err := s.store.FindSmartAnalyze(ctx, s.enrichBatch)
	if err != nil {
		return nil, err
	}

	var enriched []string
	for _, ref := range refs {
		note := ref.Title
		if ref.Description != "" {
			note += " - " + ref.Description
		}
		cls := s.classifier.Classify(ctx, ref.URL, note)
		cls.TagSet.Normalize()

		if err := s.store.UpdateTagSet(ctx, ref.ID, cls.TagSet); err != nil {
			logger.Log.Errorf("failed to update tags for reference %s: %v", ref.ID.Hex(), err)
			continue
		}
		enriched = append(enriched, ref.ID.Hex())
	}
	return enriched, nil
}

// ListReferences exposes the paginated collection for the review UI.
func (s *ReferenceService) ListReferences(ctx context.Context, page, pageSize int) ([]models.Reference, int64, error) {
	return s.store.List(ctx, page, pageSize)
}

func truncateRunes(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
