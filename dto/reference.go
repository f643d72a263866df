package dto

import (
	"time"

	"refdeck/models"
)

// ReferenceDTO exposes a reference for the review UI. IDs are hex strings
// to keep transport simple; internal flags stay hidden except the review
// checkbox itself.
type ReferenceDTO struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	Description   string    `json:"description"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	AddedBy       string    `json:"added_by"`
	Tags          []string  `json:"tags"`
	Format        []string  `json:"format"`
	TagsValidated bool      `json:"tags_validated"`
}

// Pagination wraps a page of items.
type Pagination[T any] struct {
	Data     []T   `json:"data"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

func FromReference(ref models.Reference) ReferenceDTO {
	return ReferenceDTO{
		ID:            ref.ID.Hex(),
		CreatedAt:     ref.CreatedAt,
		Title:         ref.Title,
		URL:           ref.URL,
		Description:   ref.Description,
		ThumbnailURL:  ref.ThumbnailURL,
		AddedBy:       ref.AddedBy,
		Tags:          ref.TagSet.Tags,
		Format:        ref.TagSet.Format,
		TagsValidated: ref.TagsValidated,
	}
}
