package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"refdeck/config"
	"refdeck/internal/logger"
	"refdeck/models"
)

// Result is the structured output of one classification call. A zero Result
// (empty scalars, empty lists) is the fallback for every failure mode.
type Result struct {
	Title       string
	Description string
	TagSet      models.TagSet
}

const SYSTEM_INSTRUCTION = `
You are a curation assistant for a social media creative reference library.
You are given the URL of a piece of content (TikTok, Reels, Shorts, a visual,
a landing page) and optionally a short note written by the person saving it.
Respond with a single JSON object carrying EXACTLY these keys:

{
  "title": "...",
  "description": "...",
  "tags": ["..."],
  "format": ["..."],
  "content_type": ["..."],
  "staging": ["..."],
  "visual_style": ["..."],
  "typography": ["..."],
  "motion": ["..."],
  "objective": ["..."],
  "mood": ["..."],
  "effects": ["..."]
}

Rules:
- "title" is a short working title (a few words). "description" is 1-3
  sentences summarizing the content for the library, not marketing copy.
- Category values should be drawn from the vocabulary below when one fits.
- "tags" is the flat union of every category value you assigned.
- Use an empty array when a category does not apply. No duplicates.
- The response MUST contain ONLY the raw JSON object. You MUST NOT wrap it
  in a markdown code block.
`

// Classifier calls Gemini in JSON mode to tag a reference.
type Classifier struct {
	model string
}

func New(model string) *Classifier {
	if model == "" {
		model = config.GetConfig().Classifier.Model
	}
	return &Classifier{model: model}
}

// Classify turns a URL and user note into a structured tag record. Any call
// or parse failure is absorbed: the zero Result comes back and reference
// creation proceeds without tags.
func (c *Classifier) Classify(ctx context.Context, url, note string) Result {
	res, err := c.classify(ctx, url, note)
	if err != nil {
		logger.Log.Warnf("classification failed, falling back to empty record: %v", err)
		return Result{}
	}
	return res
}

func (c *Classifier) classify(ctx context.Context, url, note string) (Result, error) {
	apiKey := config.GeminiAPIKey()
	if apiKey == "" {
		return Result{}, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return Result{}, err
	}

	resp, err := client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(buildPrompt(url, note)),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_INSTRUCTION + "\nVocabulary:\n" + vocabularyPromptSection()}}},
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return Result{}, err
	}

	return ParseResponse(resp.Text())
}

// buildPrompt embeds the literal inputs so identical inputs produce an
// identical prompt.
func buildPrompt(url, note string) string {
	if url == "" {
		url = "(no URL)"
	}
	if note == "" {
		note = "(none)"
	}
	return fmt.Sprintf("Content URL: %s\nUser note: %s", url, note)
}

type responsePayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Format      []string `json:"format"`
	ContentType []string `json:"content_type"`
	Staging     []string `json:"staging"`
	VisualStyle []string `json:"visual_style"`
	Typography  []string `json:"typography"`
	Motion      []string `json:"motion"`
	Objective   []string `json:"objective"`
	Mood        []string `json:"mood"`
	Effects     []string `json:"effects"`
}

// ParseResponse decodes the model output. Markdown fences are tolerated
// even though the instruction forbids them; anything else malformed is an
// error the caller maps to the empty fallback.
func ParseResponse(raw string) (Result, error) {
	raw = stripCodeFence(raw)

	var p responsePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Result{}, fmt.Errorf("model returned non-JSON output: %w", err)
	}

	res := Result{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		TagSet: models.TagSet{
			Tags:        p.Tags,
			Format:      p.Format,
			ContentType: p.ContentType,
			Staging:     p.Staging,
			VisualStyle: p.VisualStyle,
			Typography:  p.Typography,
			Motion:      p.Motion,
			Objective:   p.Objective,
			Mood:        p.Mood,
			Effects:     p.Effects,
		},
	}
	res.TagSet.Normalize()
	return res, nil
}

func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
