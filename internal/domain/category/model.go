package category

import (
	"github.com/riskibarqy/football-portal/internal/platform/record"
	"github.com/riskibarqy/football-portal/internal/platform/text"
)

var Schema = record.Schema{
	Collection:   "categories",
	Fields:       []string{"id", "name", "slug", "description", "created_at", "updated_at"},
	Writable:     []string{"name", "slug", "description"},
	Searchable:   []string{"name", "description"},
	DefaultOrder: "name ASC",
	Timestamps:   true,
}

type CreateInput struct {
	Name        string `json:"name" validate:"required,max=80"`
	Slug        string `json:"slug" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"max=500"`
}

func (in CreateInput) Record() (record.Record, error) {
	slug := in.Slug
	if slug == "" {
		slug = text.Slugify(in.Name)
	}
	return record.Record{
		"name":        in.Name,
		"slug":        slug,
		"description": in.Description,
	}, nil
}

type UpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=80"`
	Slug        *string `json:"slug" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (in UpdateInput) Record() (record.Record, error) {
	rec := record.Record{}
	record.Put(rec, "name", in.Name)
	record.Put(rec, "slug", in.Slug)
	record.Put(rec, "description", in.Description)
	return rec, nil
}
