package classifier

import "strings"

// Controlled vocabulary per tag category. The lists are advisory: they are
// embedded into the prompt to steer the model, but values coming back
// outside the vocabulary are kept as-is. Reviewers curate drift out-of-band
// through the tags_validated checkbox.
var Vocabulary = map[string][]string{
	"format": {
		"vertical", "horizontal", "square", "carousel", "story", "reel",
		"shorts", "16:9", "9:16", "1:1",
	},
	"content_type": {
		"on-camera", "facecam", "interview", "narration", "tutorial",
		"storytelling", "demo", "comparison", "reaction", "FAQ",
		"social experiment", "making-of", "challenge", "podcast", "ASMR",
		"review", "testimonial", "UGC", "product showcase", "teaser",
		"announcement", "humorous", "informative", "educational",
	},
	"staging": {
		"green screen", "plain background", "real-world set", "in motion",
		"multicam", "static shot", "close-up", "wide shot", "split screen",
		"duo", "voice-over", "face reveal", "POV",
	},
	"visual_style": {
		"retro", "futuristic", "brutalist", "doodle", "cartoon",
		"flat design", "3D render", "cyberpunk", "corporate clean",
		"editorial", "pop culture", "tech UI", "organic", "premium",
		"grunge", "minimalist", "photojournalism", "duotone", "monochrome",
		"vintage", "Y2K", "Pinterest aesthetic", "moodboard",
	},
	"typography": {
		"bold typography", "condensed type", "geometric type", "serif type",
		"handwritten type", "oversized title", "cutout typography",
		"layered typography", "minimalist typography",
	},
	"motion": {
		"jumpcut", "fast cuts", "dynamic transition", "creative transition",
		"animated titles", "dynamic subtitles", "motion design",
		"2D animation", "fast zooms", "glitch effects", "VHS effects",
		"slow motion", "hyperlapse", "loop", "b-roll", "cutaways",
	},
	"objective": {
		"branding", "awareness", "conversion", "promo", "teasing",
		"education", "onboarding", "recruiting", "product tutorial",
		"brand storytelling", "social proof", "top 3", "top 5", "news",
	},
	"mood": {
		"warm", "cold", "pastel", "neon", "saturated", "desaturated",
		"black and white", "high contrast", "dark", "bright",
		"cinematic grade", "natural", "vibrant", "flash colors",
	},
	"effects": {
		"film grain", "paper texture", "noise texture", "drop shadows",
		"reflections", "stickers", "geometric shapes", "gradients",
		"VHS bands", "vintage filters", "light halos", "white outlines",
		"double exposure", "transparencies",
	},
}

// categoryOrder keeps the prompt deterministic for identical inputs.
var categoryOrder = []string{
	"format", "content_type", "staging", "visual_style", "typography",
	"motion", "objective", "mood", "effects",
}

func vocabularyPromptSection() string {
	var b strings.Builder
	for _, cat := range categoryOrder {
		b.WriteString("- ")
		b.WriteString(cat)
		b.WriteString(": ")
		b.WriteString(strings.Join(Vocabulary[cat], ", "))
		b.WriteString("\n")
	}
	return b.String()
}
