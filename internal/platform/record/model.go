package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	qb "github.com/riskibarqy/football-portal/internal/platform/querybuilder"
)

var (
	// ErrInvalidField is returned before any query when a caller names a
	// field the schema does not declare.
	ErrInvalidField = crerr.New("invalid field")
	// ErrNothingToWrite is returned by Create when no writable field was supplied.
	ErrNothingToWrite = crerr.New("no writable fields supplied")
)

// Record is one row of a collection keyed by column name.
type Record map[string]any

func (r Record) Int64(field string) int64 {
	v, _ := database.AsInt64(r[field])
	return v
}

func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Query narrows List beyond plain pagination.
type Query struct {
	Keyword string
	Where   []qb.Condition
	OrderBy string
	Page    int
	PerPage int
}

// Model is a stateless CRUD facade over one schema.
type Model struct {
	exec   database.Executor
	schema Schema
	now    func() time.Time
}

func NewModel(exec database.Executor, schema Schema) (*Model, error) {
	if exec == nil {
		return nil, fmt.Errorf("record model %s: executor is nil", schema.Collection)
	}
	if schema.PrimaryKey == "" {
		schema.PrimaryKey = "id"
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &Model{exec: exec, schema: schema, now: time.Now}, nil
}

// MustModel panics on an invalid schema. Schemas are static declarations.
func MustModel(exec database.Executor, schema Schema) *Model {
	m, err := NewModel(exec, schema)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model) Schema() Schema {
	return m.schema
}

func (m *Model) Executor() database.Executor {
	return m.exec
}

// WithExecutor returns a copy bound to exec, typically a transaction.
func (m *Model) WithExecutor(exec database.Executor) *Model {
	cp := *m
	cp.exec = exec
	return &cp
}

// WithClock overrides the timestamp source.
func (m *Model) WithClock(now func() time.Time) *Model {
	cp := *m
	cp.now = now
	return &cp
}

func (m *Model) Find(ctx context.Context, id any) (Record, bool, error) {
	return m.first(ctx, qb.Eq(m.schema.PrimaryKey, id))
}

func (m *Model) FindBy(ctx context.Context, field string, value any) (Record, bool, error) {
	if err := m.checkField(field); err != nil {
		return nil, false, err
	}
	return m.first(ctx, qb.Eq(field, value))
}

// Where returns every record whose field equals value, in default order.
func (m *Model) Where(ctx context.Context, field string, value any) ([]Record, error) {
	if err := m.checkField(field); err != nil {
		return nil, err
	}
	return m.Select(ctx, m.schema.defaultOrder(), 0, qb.Eq(field, value))
}

// Select runs an unpaginated projected query. limit <= 0 means no limit.
func (m *Model) Select(ctx context.Context, orderBy string, limit int, conditions ...qb.Condition) ([]Record, error) {
	if orderBy == "" {
		orderBy = m.schema.defaultOrder()
	}
	if err := ValidateOrder(orderBy); err != nil {
		return nil, err
	}

	query, args, err := qb.Select(m.schema.Readable()...).
		From(m.schema.Collection).
		Where(conditions...).
		OrderBy(orderBy).
		Limit(limit).
		PlaceholderFormat(m.exec.Placeholder()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", m.schema.Collection, err)
	}

	rs, err := m.exec.Execute(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", m.schema.Collection, err)
	}
	return m.project(rs.Records), nil
}

func (m *Model) first(ctx context.Context, conditions ...qb.Condition) (Record, bool, error) {
	records, err := m.Select(ctx, m.schema.defaultOrder(), 1, conditions...)
	if err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		return nil, false, nil
	}
	return records[0], true, nil
}

// Create inserts the writable subset of fields and returns the generated id.
// Unknown or non-writable fields are dropped silently.
func (m *Model) Create(ctx context.Context, fields Record) (int64, error) {
	cols, vals := m.writable(fields)
	if len(cols) == 0 {
		return 0, crerr.Wrapf(ErrNothingToWrite, "create %s", m.schema.Collection)
	}
	if m.schema.Timestamps {
		now := m.timestamp()
		cols = append(cols, CreatedAtField, UpdatedAtField)
		vals = append(vals, now, now)
	}

	query, args, err := qb.InsertInto(m.schema.Collection).
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING " + m.schema.PrimaryKey).
		PlaceholderFormat(m.exec.Placeholder()).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert %s query: %w", m.schema.Collection, err)
	}

	rs, err := m.exec.Execute(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", m.schema.Collection, err)
	}
	if len(rs.Records) > 0 {
		if id, ok := database.AsInt64(rs.Records[0][m.schema.PrimaryKey]); ok {
			return id, nil
		}
	}
	return rs.LastInsertID, nil
}

// Update applies a partial change. It reports false when no row matched id or
// when fields held nothing writable.
func (m *Model) Update(ctx context.Context, id any, fields Record) (bool, error) {
	cols, vals := m.writable(fields)
	if len(cols) == 0 {
		return false, nil
	}

	builder := qb.Update(m.schema.Collection).PlaceholderFormat(m.exec.Placeholder())
	for i, col := range cols {
		builder.Set(col, vals[i])
	}
	if m.schema.Timestamps {
		builder.Set(UpdatedAtField, m.timestamp())
	}

	query, args, err := builder.Where(qb.Eq(m.schema.PrimaryKey, id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update %s query: %w", m.schema.Collection, err)
	}

	rs, err := m.exec.Execute(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update %s: %w", m.schema.Collection, err)
	}
	return rs.RowsAffected > 0, nil
}

func (m *Model) Delete(ctx context.Context, id any) (bool, error) {
	query, args, err := qb.DeleteFrom(m.schema.Collection).
		Where(qb.Eq(m.schema.PrimaryKey, id)).
		PlaceholderFormat(m.exec.Placeholder()).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete %s query: %w", m.schema.Collection, err)
	}

	rs, err := m.exec.Execute(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", m.schema.Collection, err)
	}
	return rs.RowsAffected > 0, nil
}

// Search matches keyword as a case-insensitive substring of any searchable
// field. An empty keyword returns the unfiltered page.
func (m *Model) Search(ctx context.Context, keyword string, page, perPage int) (Page[Record], error) {
	return m.List(ctx, Query{Keyword: keyword, Page: page, PerPage: perPage})
}

func (m *Model) Paginate(ctx context.Context, page, perPage int) (Page[Record], error) {
	return m.List(ctx, Query{Page: page, PerPage: perPage})
}

func (m *Model) List(ctx context.Context, q Query) (Page[Record], error) {
	page, perPage := NormalizePaging(q.Page, q.PerPage)

	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = m.schema.defaultOrder()
	}
	if err := ValidateOrder(orderBy); err != nil {
		return Page[Record]{}, err
	}

	conditions := append([]qb.Condition(nil), q.Where...)
	if keyword := strings.TrimSpace(q.Keyword); keyword != "" {
		conditions = append(conditions, m.keywordCondition(keyword))
	}

	total, err := m.Count(ctx, conditions...)
	if err != nil {
		return Page[Record]{}, err
	}

	if page > LastPage(total, perPage) {
		return NewPage[Record](nil, total, page, perPage), nil
	}
	offset := (page - 1) * perPage

	query, args, err := qb.Select(m.schema.Readable()...).
		From(m.schema.Collection).
		Where(conditions...).
		OrderBy(orderBy).
		Limit(perPage).
		Offset(offset).
		PlaceholderFormat(m.exec.Placeholder()).
		ToSQL()
	if err != nil {
		return Page[Record]{}, fmt.Errorf("build list %s query: %w", m.schema.Collection, err)
	}

	rs, err := m.exec.Execute(ctx, query, args...)
	if err != nil {
		return Page[Record]{}, fmt.Errorf("list %s: %w", m.schema.Collection, err)
	}
	return NewPage(m.project(rs.Records), total, page, perPage), nil
}

func (m *Model) Count(ctx context.Context, conditions ...qb.Condition) (int64, error) {
	query, args, err := qb.Select("COUNT(*) AS total").
		From(m.schema.Collection).
		Where(conditions...).
		PlaceholderFormat(m.exec.Placeholder()).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count %s query: %w", m.schema.Collection, err)
	}

	var total int64
	if err := m.exec.Get(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", m.schema.Collection, err)
	}
	return total, nil
}

func (m *Model) keywordCondition(keyword string) qb.Condition {
	conditions := make([]qb.Condition, 0, len(m.schema.Searchable))
	for _, field := range m.schema.Searchable {
		conditions = append(conditions, qb.Contains(field, keyword))
	}
	return qb.Or(conditions...)
}

func (m *Model) checkField(field string) error {
	if !m.schema.HasField(field) || m.schema.IsSensitive(field) {
		return crerr.Wrapf(ErrInvalidField, "%s.%s", m.schema.Collection, field)
	}
	return nil
}

func (m *Model) writable(fields Record) ([]string, []any) {
	cols := make([]string, 0, len(m.schema.Writable))
	vals := make([]any, 0, len(m.schema.Writable))
	for _, field := range m.schema.Writable {
		value, ok := fields[field]
		if !ok {
			continue
		}
		cols = append(cols, field)
		vals = append(vals, value)
	}
	return cols, vals
}

func (m *Model) timestamp() time.Time {
	return m.now().UTC().Truncate(time.Second)
}

func (m *Model) project(rows []database.Row) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := Record(row)
		for _, field := range m.schema.Sensitive {
			delete(rec, field)
		}
		out = append(out, rec)
	}
	return out
}
