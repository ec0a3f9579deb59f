package record

import (
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/football-portal/internal/platform/querybuilder"
)

const (
	CreatedAtField = "created_at"
	UpdatedAtField = "updated_at"
)

// Schema declares the shape of one collection. Fields lists every readable
// column including the primary key; Writable, Sensitive and Searchable are
// subsets of it.
type Schema struct {
	Collection   string
	PrimaryKey   string
	Fields       []string
	Writable     []string
	Sensitive    []string
	Searchable   []string
	DefaultOrder string
	// Timestamps maintains created_at and updated_at on writes.
	Timestamps bool
}

func (s Schema) primaryKey() string {
	if s.PrimaryKey == "" {
		return "id"
	}
	return s.PrimaryKey
}

func (s Schema) defaultOrder() string {
	if strings.TrimSpace(s.DefaultOrder) == "" {
		return s.primaryKey() + " DESC"
	}
	return s.DefaultOrder
}

func (s Schema) HasField(field string) bool {
	return slices.Contains(s.Fields, field)
}

func (s Schema) IsWritable(field string) bool {
	return slices.Contains(s.Writable, field)
}

func (s Schema) IsSensitive(field string) bool {
	return slices.Contains(s.Sensitive, field)
}

// Readable returns the columns that may leave the model.
func (s Schema) Readable() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !s.IsSensitive(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s Schema) Validate() error {
	if !querybuilder.IsIdentifier(s.Collection) {
		return fmt.Errorf("schema collection %q is not a valid identifier", s.Collection)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema %s declares no fields", s.Collection)
	}
	for _, f := range s.Fields {
		if !querybuilder.IsIdentifier(f) {
			return fmt.Errorf("schema %s field %q is not a valid identifier", s.Collection, f)
		}
	}
	if !s.HasField(s.primaryKey()) {
		return fmt.Errorf("schema %s primary key %q is not a declared field", s.Collection, s.primaryKey())
	}
	if s.IsSensitive(s.primaryKey()) {
		return fmt.Errorf("schema %s primary key cannot be sensitive", s.Collection)
	}

	for name, subset := range map[string][]string{
		"writable":   s.Writable,
		"sensitive":  s.Sensitive,
		"searchable": s.Searchable,
	} {
		for _, f := range subset {
			if !s.HasField(f) {
				return fmt.Errorf("schema %s %s field %q is not a declared field", s.Collection, name, f)
			}
		}
	}
	for _, f := range s.Searchable {
		if s.IsSensitive(f) {
			return fmt.Errorf("schema %s searchable field %q is sensitive", s.Collection, f)
		}
	}

	if s.Timestamps && (!s.HasField(CreatedAtField) || !s.HasField(UpdatedAtField)) {
		return fmt.Errorf("schema %s uses timestamps but lacks %s/%s", s.Collection, CreatedAtField, UpdatedAtField)
	}

	return ValidateOrder(s.defaultOrder())
}

// ValidateOrder accepts "col [ASC|DESC], ..." over plain identifiers.
func ValidateOrder(order string) error {
	for _, part := range strings.Split(order, ",") {
		tokens := strings.Fields(part)
		if len(tokens) == 0 || len(tokens) > 2 {
			return fmt.Errorf("invalid order clause %q", order)
		}
		if !querybuilder.IsIdentifier(tokens[0]) {
			return fmt.Errorf("invalid order column %q", tokens[0])
		}
		if len(tokens) == 2 {
			dir := strings.ToUpper(tokens[1])
			if dir != "ASC" && dir != "DESC" {
				return fmt.Errorf("invalid order direction %q", tokens[1])
			}
		}
	}
	return nil
}
