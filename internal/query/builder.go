// Package query builds parameterized PostgreSQL statements.
//
// Statements are assembled from explicit clause lists. Values never
// reach the SQL text: predicates are written with "?" markers which
// are rewritten to positional "$n" placeholders in the order they are
// added, and the values are collected alongside. Identifiers are only
// ever taken from the allow-lists in this package.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Statement is a SQL string together with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// binder hands out monotonically increasing placeholder indexes shared by
// every clause of one statement.
type binder struct {
	args []any
}

// bind rewrites each "?" in pred to the next "$n" and records args.
// It panics if the marker count and args differ; predicates are static
// strings in this package so a mismatch is a programming error.
func (b *binder) bind(pred string, args ...any) string {
	if strings.Count(pred, "?") != len(args) {
		panic(fmt.Sprintf("query: %q has %d markers for %d args", pred, strings.Count(pred, "?"), len(args)))
	}

	var sb strings.Builder
	i := 0
	for _, r := range pred {
		if r == '?' {
			b.args = append(b.args, args[i])
			i++
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(len(b.args)))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// SelectBuilder assembles a SELECT statement.
type SelectBuilder struct {
	binder
	columns []string
	from    string
	joins   []string
	where   []string
	groupBy []string
	having  []string
	orderBy []string
	limit   string
}

// Select starts a SELECT statement for columns.
func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

// From sets the FROM table.
func (b *SelectBuilder) From(from string) *SelectBuilder {
	b.from = from
	return b
}

// Join appends a raw JOIN clause. It must not contain values.
func (b *SelectBuilder) Join(join string) *SelectBuilder {
	b.joins = append(b.joins, join)
	return b
}

// Where appends a predicate; predicates are joined with AND.
func (b *SelectBuilder) Where(pred string, args ...any) *SelectBuilder {
	b.where = append(b.where, b.bind(pred, args...))
	return b
}

// GroupBy sets the GROUP BY columns.
func (b *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	b.groupBy = columns
	return b
}

// Having appends an aggregate predicate; predicates are joined with AND.
func (b *SelectBuilder) Having(pred string, args ...any) *SelectBuilder {
	b.having = append(b.having, b.bind(pred, args...))
	return b
}

// OrderBy sets the ORDER BY expressions.
func (b *SelectBuilder) OrderBy(exprs ...string) *SelectBuilder {
	b.orderBy = exprs
	return b
}

// Limit binds n as the LIMIT parameter. Call it last so the limit is the
// final positional argument.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = b.bind("?", n)
	return b
}

// ToSQL renders the statement. Empty clause lists are omitted entirely.
func (b *SelectBuilder) ToSQL() Statement {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))

	sb.WriteString(" FROM ")
	sb.WriteString(b.from)

	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
	}

	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}

	if len(b.having) > 0 {
		sb.WriteString(" HAVING ")
		sb.WriteString(strings.Join(b.having, " AND "))
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit != "" {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.limit)
	}

	return Statement{SQL: sb.String(), Args: b.args}
}

// InsertBuilder assembles an INSERT ... RETURNING statement.
type InsertBuilder struct {
	binder
	into         string
	columns      []string
	placeholders []string
	returning    []string
}

// Insert starts an INSERT into table.
func Insert(into string) *InsertBuilder {
	return &InsertBuilder{into: into}
}

// Set adds one column and its value.
func (b *InsertBuilder) Set(column string, value any) *InsertBuilder {
	b.columns = append(b.columns, column)
	b.placeholders = append(b.placeholders, b.bind("?", value))
	return b
}

// Returning sets the RETURNING columns.
func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = columns
	return b
}

// ToSQL renders the statement.
func (b *InsertBuilder) ToSQL() Statement {
	var sb strings.Builder

	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.into)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(") VALUES (")
	sb.WriteString(strings.Join(b.placeholders, ", "))
	sb.WriteString(")")

	if len(b.returning) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(b.returning, ", "))
	}

	return Statement{SQL: sb.String(), Args: b.args}
}
