package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TagSet groups the controlled-vocabulary categories assigned to a
// reference. Tags is the flat union; the remaining fields are the named
// categories stored as multi-select style string lists.
type TagSet struct {
	Tags        []string `bson:"tags" json:"tags"`
	Format      []string `bson:"format" json:"format"`
	ContentType []string `bson:"content_type" json:"content_type"`
	Staging     []string `bson:"staging" json:"staging"`
	VisualStyle []string `bson:"visual_style" json:"visual_style"`
	Typography  []string `bson:"typography" json:"typography"`
	Motion      []string `bson:"motion" json:"motion"`
	Objective   []string `bson:"objective" json:"objective"`
	Mood        []string `bson:"mood" json:"mood"`
	Effects     []string `bson:"effects" json:"effects"`
}

// Normalize trims every value, drops empties and removes duplicates within
// each category. It never fails; a fully empty set is valid.
func (t *TagSet) Normalize() {
	t.Tags = cleanList(t.Tags)
	t.Format = cleanList(t.Format)
	t.ContentType = cleanList(t.ContentType)
	t.Staging = cleanList(t.Staging)
	t.VisualStyle = cleanList(t.VisualStyle)
	t.Typography = cleanList(t.Typography)
	t.Motion = cleanList(t.Motion)
	t.Objective = cleanList(t.Objective)
	t.Mood = cleanList(t.Mood)
	t.Effects = cleanList(t.Effects)
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Reference is one curated content reference.
// Collection: references
type Reference struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
	Title        string             `bson:"title" json:"title"`
	URL          string             `bson:"url" json:"url"`
	Description  string             `bson:"description" json:"description"`
	ThumbnailURL string             `bson:"thumbnail_url" json:"thumbnail_url"`
	InternalID   string             `bson:"internal_id" json:"internal_id"`
	AddedBy      string             `bson:"added_by" json:"added_by"`
	TagSet       TagSet             `bson:"tag_set" json:"tag_set"`

	// TagsValidated starts false; an external reviewer flips it after
	// checking the generated tags.
	TagsValidated bool `bson:"tags_validated" json:"tags_validated"`

	// SmartAnalyze marks a reference for the batch enrichment pass, which
	// re-runs classification from the stored title and description.
	SmartAnalyze bool `bson:"smart_analyze" json:"smart_analyze"`
}
