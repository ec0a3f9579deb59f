package team

import "github.com/riskibarqy/football-portal/internal/platform/record"

var Schema = record.Schema{
	Collection: "teams",
	Fields: []string{
		"id", "name", "short_name", "logo_url", "league_id", "stadium", "founded",
		"external_id", "created_at", "updated_at",
	},
	Writable:     []string{"name", "short_name", "logo_url", "league_id", "stadium", "founded", "external_id"},
	Searchable:   []string{"name", "short_name", "stadium"},
	DefaultOrder: "name ASC",
	Timestamps:   true,
}

type CreateInput struct {
	Name       string `json:"name" validate:"required,max=120"`
	ShortName  string `json:"short_name" validate:"omitempty,max=10"`
	LogoURL    string `json:"logo_url" validate:"omitempty,url"`
	LeagueID   *int64 `json:"league_id" validate:"omitempty,gt=0"`
	Stadium    string `json:"stadium" validate:"max=120"`
	Founded    *int   `json:"founded" validate:"omitempty,gte=1850,lte=2100"`
	ExternalID *int64 `json:"external_id" validate:"omitempty,gt=0"`
}

func (in CreateInput) Record() (record.Record, error) {
	rec := record.Record{
		"name":       in.Name,
		"short_name": in.ShortName,
		"logo_url":   in.LogoURL,
		"stadium":    in.Stadium,
	}
	record.Put(rec, "league_id", in.LeagueID)
	record.Put(rec, "founded", in.Founded)
	record.Put(rec, "external_id", in.ExternalID)
	return rec, nil
}

type UpdateInput struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=120"`
	ShortName  *string `json:"short_name" validate:"omitempty,max=10"`
	LogoURL    *string `json:"logo_url" validate:"omitempty,url"`
	LeagueID   *int64  `json:"league_id" validate:"omitempty,gt=0"`
	Stadium    *string `json:"stadium" validate:"omitempty,max=120"`
	Founded    *int    `json:"founded" validate:"omitempty,gte=1850,lte=2100"`
	ExternalID *int64  `json:"external_id" validate:"omitempty,gt=0"`
}

func (in UpdateInput) Record() (record.Record, error) {
	rec := record.Record{}
	record.Put(rec, "name", in.Name)
	record.Put(rec, "short_name", in.ShortName)
	record.Put(rec, "logo_url", in.LogoURL)
	record.Put(rec, "league_id", in.LeagueID)
	record.Put(rec, "stadium", in.Stadium)
	record.Put(rec, "founded", in.Founded)
	record.Put(rec, "external_id", in.ExternalID)
	return rec, nil
}
