package article

import (
	"time"

	"github.com/riskibarqy/football-portal/internal/platform/record"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

var Schema = record.Schema{
	Collection: "articles",
	Fields: []string{
		"id", "title", "slug", "summary", "content", "image_url", "category_id",
		"author_id", "status", "is_featured", "views", "published_at",
		"created_at", "updated_at",
	},
	Writable: []string{
		"title", "slug", "summary", "content", "image_url", "category_id",
		"author_id", "status", "is_featured", "published_at",
	},
	Searchable: []string{"title", "summary", "content"},
	Timestamps: true,
}

// CreateInput is the only shape an article create accepts. It has no role,
// views or id, so those can never be mass-assigned.
type CreateInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Slug        string     `json:"slug" validate:"omitempty,max=220"`
	Summary     string     `json:"summary" validate:"max=500"`
	Content     string     `json:"content" validate:"required"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url"`
	CategoryID  *int64     `json:"category_id" validate:"omitempty,gt=0"`
	AuthorID    *int64     `json:"author_id" validate:"omitempty,gt=0"`
	Status      string     `json:"status" validate:"omitempty,oneof=draft published"`
	IsFeatured  bool       `json:"is_featured"`
	PublishedAt *time.Time `json:"published_at"`
}

func (in CreateInput) Record() (record.Record, error) {
	status := in.Status
	if status == "" {
		status = StatusDraft
	}
	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Title)
	}

	rec := record.Record{
		"title":       in.Title,
		"slug":        slug,
		"summary":     in.Summary,
		"content":     in.Content,
		"image_url":   in.ImageURL,
		"status":      status,
		"is_featured": in.IsFeatured,
	}
	record.Put(rec, "category_id", in.CategoryID)
	record.Put(rec, "author_id", in.AuthorID)

	switch {
	case in.PublishedAt != nil:
		rec["published_at"] = in.PublishedAt.UTC()
	case status == StatusPublished:
		rec["published_at"] = time.Now().UTC().Truncate(time.Second)
	}
	return rec, nil
}

type UpdateInput struct {
	Title         *string    `json:"title" validate:"omitempty,max=200"`
	Slug          *string    `json:"slug" validate:"omitempty,min=1,max=220"`
	Summary       *string    `json:"summary" validate:"omitempty,max=500"`
	Content       *string    `json:"content" validate:"omitempty,min=1"`
	ImageURL      *string    `json:"image_url" validate:"omitempty,url"`
	CategoryID    *int64     `json:"category_id" validate:"omitempty,gt=0"`
	ClearCategory bool       `json:"clear_category"`
	Status        *string    `json:"status" validate:"omitempty,oneof=draft published"`
	IsFeatured    *bool      `json:"is_featured"`
	PublishedAt   *time.Time `json:"published_at"`
}

func (in UpdateInput) Record() (record.Record, error) {
	rec := record.Record{}
	record.Put(rec, "title", in.Title)
	record.Put(rec, "slug", in.Slug)
	record.Put(rec, "summary", in.Summary)
	record.Put(rec, "content", in.Content)
	record.Put(rec, "image_url", in.ImageURL)
	record.PutNullable(rec, "category_id", in.CategoryID, in.ClearCategory)
	record.Put(rec, "status", in.Status)
	record.Put(rec, "is_featured", in.IsFeatured)
	if in.PublishedAt != nil {
		rec["published_at"] = in.PublishedAt.UTC()
	}
	return rec, nil
}
