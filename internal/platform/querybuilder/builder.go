package querybuilder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PlaceholderFormat selects how bound parameters are rendered.
type PlaceholderFormat int

const (
	// Dollar renders $1, $2, ... (postgres).
	Dollar PlaceholderFormat = iota
	// Question renders ? (sqlite, mysql).
	Question
)

func (f PlaceholderFormat) render(i int) string {
	if f == Question {
		return "?"
	}
	return "$" + strconv.Itoa(i)
}

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// IsIdentifier reports whether name is safe to splice into SQL as a table or column name.
func IsIdentifier(name string) bool {
	return identifierRegex.MatchString(name)
}

type writer struct {
	buf    strings.Builder
	args   []any
	next   int
	format PlaceholderFormat
}

func newWriter(format PlaceholderFormat) *writer {
	return &writer{next: 1, format: format}
}

func (w *writer) bind(value any) {
	w.buf.WriteString(w.format.render(w.next))
	w.args = append(w.args, value)
	w.next++
}

type Condition interface {
	appendSQL(w *writer)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" = ")
	w.bind(c.value)
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) appendSQL(w *writer) {
	if len(c.values) == 0 {
		w.buf.WriteString("1=0")
		return
	}

	w.buf.WriteString(c.column)
	w.buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(v)
	}
	w.buf.WriteString(")")
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" IS NULL")
}

type likeCondition struct {
	column string
	needle string
}

// Contains matches rows whose column holds needle as a case-insensitive substring.
// LIKE wildcards inside needle are escaped. SQLite's LOWER folds ASCII only.
func Contains(column, needle string) Condition {
	return likeCondition{column: column, needle: needle}
}

func (c likeCondition) appendSQL(w *writer) {
	w.buf.WriteString("LOWER(")
	w.buf.WriteString(c.column)
	w.buf.WriteString(") LIKE ")
	w.bind("%" + strings.ToLower(EscapeLike(c.needle)) + "%")
	w.buf.WriteString(` ESCAPE '\'`)
}

type orCondition struct {
	conditions []Condition
}

// Or joins conditions with OR inside parentheses. An empty Or matches nothing.
func Or(conditions ...Condition) Condition {
	return orCondition{conditions: conditions}
}

func (c orCondition) appendSQL(w *writer) {
	if len(c.conditions) == 0 {
		w.buf.WriteString("1=0")
		return
	}
	w.buf.WriteString("(")
	for i, cond := range c.conditions {
		if i > 0 {
			w.buf.WriteString(" OR ")
		}
		cond.appendSQL(w)
	}
	w.buf.WriteString(")")
}

type exprCondition struct {
	expr string
	args []any
}

func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) appendSQL(w *writer) {
	rewritePlaceholders(w, c.expr, c.args)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
	offset  int
	format  PlaceholderFormat
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

func (b *SelectBuilder) PlaceholderFormat(format PlaceholderFormat) *SelectBuilder {
	b.format = format
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	w := newWriter(b.format)
	w.buf.WriteString("SELECT ")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(" FROM ")
	w.buf.WriteString(b.table)

	appendWhereClause(w, b.where)
	appendGroupByClause(w, b.groupBy)
	appendOrderByClause(w, b.orderBy)
	appendLimitClause(w, b.limit, b.offset)

	return w.buf.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
	format  PlaceholderFormat
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) PlaceholderFormat(format PlaceholderFormat) *InsertBuilder {
	b.format = format
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	w := newWriter(b.format)
	w.buf.WriteString("INSERT INTO ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" (")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(") VALUES ")

	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.buf.WriteString(", ")
			}
			w.bind(value)
		}
		w.buf.WriteString(")")
	}

	if b.suffix != "" {
		w.buf.WriteString(" ")
		w.buf.WriteString(b.suffix)
	}

	return w.buf.String(), w.args, nil
}

type setClause struct {
	column string
	value  any
	expr   *exprCondition
}

type UpdateBuilder struct {
	table  string
	sets   []setClause
	where  []Condition
	suffix string
	format PlaceholderFormat
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{
		column: column,
		expr:   &exprCondition{expr: expr, args: args},
	})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) PlaceholderFormat(format PlaceholderFormat) *UpdateBuilder {
	b.format = format
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	w := newWriter(b.format)
	w.buf.WriteString("UPDATE ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" SET ")

	for i, s := range b.sets {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString(s.column)
		w.buf.WriteString(" = ")
		if s.expr != nil {
			rewritePlaceholders(w, s.expr.expr, s.expr.args)
			continue
		}
		w.bind(s.value)
	}

	appendWhereClause(w, b.where)
	if b.suffix != "" {
		w.buf.WriteString(" ")
		w.buf.WriteString(b.suffix)
	}

	return w.buf.String(), w.args, nil
}

type DeleteBuilder struct {
	table  string
	where  []Condition
	format PlaceholderFormat
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) PlaceholderFormat(format PlaceholderFormat) *DeleteBuilder {
	b.format = format
	return b
}

// ToSQL refuses to build an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete requires at least one condition")
	}

	w := newWriter(b.format)
	w.buf.WriteString("DELETE FROM ")
	w.buf.WriteString(b.table)
	appendWhereClause(w, b.where)

	return w.buf.String(), w.args, nil
}

func appendWhereClause(w *writer, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.buf.WriteString(" AND ")
		}
		c.appendSQL(w)
	}
}

func appendOrderByClause(w *writer, orderBy []string) {
	if len(orderBy) == 0 {
		return
	}
	w.buf.WriteString(" ORDER BY ")
	w.buf.WriteString(strings.Join(orderBy, ", "))
}

func appendGroupByClause(w *writer, groupBy []string) {
	if len(groupBy) == 0 {
		return
	}
	w.buf.WriteString(" GROUP BY ")
	w.buf.WriteString(strings.Join(groupBy, ", "))
}

func appendLimitClause(w *writer, limit, offset int) {
	if limit > 0 {
		w.buf.WriteString(" LIMIT ")
		w.buf.WriteString(strconv.Itoa(limit))
	}
	if offset > 0 {
		w.buf.WriteString(" OFFSET ")
		w.buf.WriteString(strconv.Itoa(offset))
	}
}

func rewritePlaceholders(w *writer, expr string, exprArgs []any) {
	if len(exprArgs) == 0 {
		w.buf.WriteString(expr)
		return
	}

	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(exprArgs) {
			w.bind(exprArgs[next])
			next++
			continue
		}
		w.buf.WriteByte(expr[i])
	}
}

// EscapeLike escapes LIKE wildcards with a backslash.
func EscapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
