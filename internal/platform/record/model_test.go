package record

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	qb "github.com/riskibarqy/football-portal/internal/platform/querybuilder"
)

var articleSchema = Schema{
	Collection: "articles",
	Fields:     []string{"id", "title", "content", "role", "created_at", "updated_at"},
	Writable:   []string{"title", "content"},
	Searchable: []string{"title", "content"},
	Timestamps: true,
}

var userSchema = Schema{
	Collection: "users",
	Fields:     []string{"id", "name", "email", "password"},
	Writable:   []string{"name", "email", "password"},
	Sensitive:  []string{"password"},
	Searchable: []string{"name", "email"},
}

func newTestGateway(t *testing.T) *database.Gateway {
	t.Helper()

	gw := database.NewGateway(database.Config{Driver: database.DriverSQLite}, logging.NewNop())
	t.Cleanup(func() { _ = gw.Close() })

	ctx := context.Background()
	for _, stmt := range []string{
		`CREATE TABLE articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT,
			role TEXT,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
	} {
		if _, err := gw.Execute(ctx, stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return gw
}

func seedArticles(t *testing.T, m *Model, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		if _, err := m.Create(context.Background(), Record{
			"title":   fmt.Sprintf("Article %02d", i),
			"content": "match report",
		}); err != nil {
			t.Fatalf("seed article %d: %v", i, err)
		}
	}
}

func TestModel_CreateDropsNonWritableFields(t *testing.T) {
	t.Parallel()

	gw := newTestGateway(t)
	fixed := time.Date(2026, 5, 2, 15, 4, 5, 999, time.UTC)
	m := MustModel(gw, articleSchema).WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	id, err := m.Create(ctx, Record{"title": "X", "content": "Y", "role": "admin", "bogus": 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 1 {
		t.Fatalf("unexpected id: %d", id)
	}

	got, ok, err := m.Find(ctx, id)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	if got["title"] != "X" || got["content"] != "Y" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got["role"] != nil {
		t.Fatalf("role must not be written from input, got %v", got["role"])
	}
	createdAt, ok := got["created_at"].(time.Time)
	if !ok || !createdAt.Equal(fixed.Truncate(time.Second)) {
		t.Fatalf("unexpected created_at: %#v", got["created_at"])
	}

	updated, err := m.Update(ctx, id, Record{"title": "X2", "role": "admin"})
	if err != nil || !updated {
		t.Fatalf("update: updated=%v err=%v", updated, err)
	}
	got, _, _ = m.Find(ctx, id)
	if got["title"] != "X2" || got["role"] != nil {
		t.Fatalf("unexpected record after update: %+v", got)
	}
}

func TestModel_CreateWithNothingWritable(t *testing.T) {
	t.Parallel()

	m := MustModel(newTestGateway(t), articleSchema)
	_, err := m.Create(context.Background(), Record{"role": "admin"})
	if !crerr.Is(err, ErrNothingToWrite) {
		t.Fatalf("expected ErrNothingToWrite, got %v", err)
	}
}

func TestModel_UpdateMissingRowReturnsFalse(t *testing.T) {
	t.Parallel()

	m := MustModel(newTestGateway(t), articleSchema)
	updated, err := m.Update(context.Background(), 999999, Record{"title": "ghost"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated {
		t.Fatalf("expected false for missing row")
	}
}

func TestModel_Delete(t *testing.T) {
	t.Parallel()

	m := MustModel(newTestGateway(t), articleSchema)
	ctx := context.Background()
	seedArticles(t, m, 1)

	deleted, err := m.Delete(ctx, 1)
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = m.Delete(ctx, 1)
	if err != nil || deleted {
		t.Fatalf("second delete: deleted=%v err=%v", deleted, err)
	}
	if _, ok, _ := m.Find(ctx, 1); ok {
		t.Fatalf("record still present after delete")
	}
}

func TestModel_SensitiveFieldsNeverReturned(t *testing.T) {
	t.Parallel()

	m := MustModel(newTestGateway(t), userSchema)
	ctx := context.Background()

	id, err := m.Create(ctx, Record{"name": "Dana", "email": "dana@example.com", "password": "hash"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	assertNoPassword := func(name string, rec Record) {
		t.Helper()
		if _, ok := rec["password"]; ok {
			t.Fatalf("%s leaked password: %+v", name, rec)
		}
	}

	rec, _, err := m.Find(ctx, id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	assertNoPassword("find", rec)

	rec, _, err = m.FindBy(ctx, "email", "dana@example.com")
	if err != nil {
		t.Fatalf("findBy: %v", err)
	}
	assertNoPassword("findBy", rec)

	list, err := m.Where(ctx, "name", "Dana")
	if err != nil || len(list) != 1 {
		t.Fatalf("where: len=%d err=%v", len(list), err)
	}
	assertNoPassword("where", list[0])

	page, err := m.Search(ctx, "dana", 1, 10)
	if err != nil || len(page.Items) != 1 {
		t.Fatalf("search: len=%d err=%v", len(page.Items), err)
	}
	assertNoPassword("search", page.Items[0])

	page, err = m.Paginate(ctx, 1, 10)
	if err != nil || len(page.Items) != 1 {
		t.Fatalf("paginate: len=%d err=%v", len(page.Items), err)
	}
	assertNoPassword("paginate", page.Items[0])

	if _, _, err := m.FindBy(ctx, "password", "hash"); !crerr.Is(err, ErrInvalidField) {
		t.Fatalf("expected lookup by sensitive field to be rejected, got %v", err)
	}
}

type countingExecutor struct {
	database.Executor
	calls int
}

func (c *countingExecutor) Execute(ctx context.Context, query string, args ...any) (database.RowSet, error) {
	c.calls++
	return c.Executor.Execute(ctx, query, args...)
}

func (c *countingExecutor) Get(ctx context.Context, dest any, query string, args ...any) error {
	c.calls++
	return c.Executor.Get(ctx, dest, query, args...)
}

func TestModel_InvalidFieldFailsBeforeQuery(t *testing.T) {
	t.Parallel()

	exec := &countingExecutor{Executor: newTestGateway(t)}
	m := MustModel(exec, articleSchema)
	ctx := context.Background()

	if _, _, err := m.FindBy(ctx, "nonexistent_field", "x"); !crerr.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
	if _, err := m.Where(ctx, "title; DROP TABLE articles", "x"); !crerr.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
	if exec.calls != 0 {
		t.Fatalf("expected no queries, got %d", exec.calls)
	}
}

func TestModel_PaginateArithmetic(t *testing.T) {
	t.Parallel()

	m := MustModel(newTestGateway(t), articleSchema)
	ctx := context.Background()
	seedArticles(t, m, 25)

	tests := []struct {
		page, perPage int
		wantItems     int
		wantLast      int
		wantPage      int
		wantFirstID   int64
	}{
		{page: 1, perPage: 10, wantItems: 10, wantLast: 3, wantPage: 1, wantFirstID: 25},
		{page: 3, perPage: 10, wantItems: 5, wantLast: 3, wantPage: 3, wantFirstID: 5},
		{page: 4, perPage: 10, wantItems: 0, wantLast: 3, wantPage: 4},
		{page: 0, perPage: 10, wantItems: 10, wantLast: 3, wantPage: 1, wantFirstID: 25},
		{page: -3, perPage: 0, wantItems: 15, wantLast: 2, wantPage: 1, wantFirstID: 25},
		{page: 1, perPage: 7, wantItems: 7, wantLast: 4, wantPage: 1, wantFirstID: 25},
		{page: 4, perPage: 7, wantItems: 4, wantLast: 4, wantPage: 4, wantFirstID: 4},
		{page: math.MaxInt/15 + 2, perPage: 15, wantItems: 0, wantLast: 2, wantPage: math.MaxInt/15 + 2},
		{page: math.MaxInt, perPage: 100, wantItems: 0, wantLast: 1, wantPage: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d/perPage=%d", tt.page, tt.perPage), func(t *testing.T) {
			got, err := m.Paginate(ctx, tt.page, tt.perPage)
			if err != nil {
				t.Fatalf("paginate: %v", err)
			}
			if got.TotalCount != 25 {
				t.Fatalf("unexpected total: %d", got.TotalCount)
			}
			if len(got.Items) != tt.wantItems || got.LastPage != tt.wantLast || got.Page != tt.wantPage {
				t.Fatalf("unexpected page: items=%d last=%d page=%d", len(got.Items), got.LastPage, got.Page)
			}
			if tt.wantItems > 0 && got.Items[0].Int64("id") != tt.wantFirstID {
				t.Fatalf("unexpected first id: %d", got.Items[0].Int64("id"))
			}
		})
	}
}

func TestModel_SearchIsCaseInsensitiveOrAcrossFields(t *testing.T) {
	t.Parallel()

	m := MustModel(newTestGateway(t), articleSchema)
	ctx := context.Background()

	for _, rec := range []Record{
		{"title": "North London Derby", "content": "Arsenal beat Spurs"},
		{"title": "Transfer news", "content": "A derby-day signing"},
		{"title": "Title race", "content": "City top"},
		{"title": "100% record", "content": "unbeaten"},
	} {
		if _, err := m.Create(ctx, rec); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := m.Search(ctx, "DERBY", 1, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got.TotalCount != 2 || len(got.Items) != 2 {
		t.Fatalf("expected 2 matches, got %d", got.TotalCount)
	}
	if got.Items[0].String("title") != "Transfer news" {
		t.Fatalf("expected primary key descending order, got %q first", got.Items[0].String("title"))
	}

	got, err = m.Search(ctx, "100%", 1, 10)
	if err != nil || got.TotalCount != 1 {
		t.Fatalf("expected literal percent match, total=%d err=%v", got.TotalCount, err)
	}

	got, err = m.Search(ctx, "   ", 1, 10)
	if err != nil || got.TotalCount != 4 {
		t.Fatalf("expected unfiltered page for blank keyword, total=%d err=%v", got.TotalCount, err)
	}
}

func TestModel_ListWithConditionsAndOrder(t *testing.T) {
	t.Parallel()

	m := MustModel(newTestGateway(t), articleSchema)
	ctx := context.Background()
	seedArticles(t, m, 5)

	got, err := m.List(ctx, Query{
		Where:   []qb.Condition{qb.In("id", []any{1, 2, 3})},
		OrderBy: "title ASC",
		Page:    1,
		PerPage: 2,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got.TotalCount != 3 || got.LastPage != 2 || got.Items[0].String("title") != "Article 01" {
		t.Fatalf("unexpected page: %+v", got)
	}

	if _, err := m.List(ctx, Query{OrderBy: "title; DROP TABLE articles"}); err == nil {
		t.Fatalf("expected invalid order to be rejected")
	}
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		ok     bool
	}{
		{name: "valid", schema: userSchema, ok: true},
		{name: "bad collection", schema: Schema{Collection: "users;", Fields: []string{"id"}}},
		{name: "writable not declared", schema: Schema{Collection: "users", Fields: []string{"id"}, Writable: []string{"role"}}},
		{name: "sensitive searchable", schema: Schema{Collection: "users", Fields: []string{"id", "password"}, Sensitive: []string{"password"}, Searchable: []string{"password"}}},
		{name: "timestamps without columns", schema: Schema{Collection: "users", Fields: []string{"id"}, Timestamps: true}},
		{name: "bad default order", schema: Schema{Collection: "users", Fields: []string{"id"}, DefaultOrder: "id SIDEWAYS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModel(&countingExecutor{}, tt.schema)
			if (err == nil) != tt.ok {
				t.Fatalf("NewModel err=%v want ok=%v", err, tt.ok)
			}
		})
	}
}
