// Package query provides the composable SELECT-building primitives the
// terminology package assembles hierarchy queries from. It is a thin layer
// over squirrel that adds the two things squirrel does not track for us:
// the base table a query started from, and an alias counter so repeated
// join-adding helpers on the same query never collide.
package query

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// SelectQuery is a SELECT statement under construction. A SelectQuery is
// owned by the call chain building it and is not safe for concurrent use.
// Builder methods mutate the receiver and return it for chaining.
type SelectQuery struct {
	builder   sq.SelectBuilder
	table     string
	joinCount int
}

// NewSelect starts a SELECT over table with the given projection columns.
func NewSelect(table string, columns ...string) *SelectQuery {
	return &SelectQuery{
		builder: sq.Select(columns...).From(table),
		table:   table,
	}
}

// Table returns the table the query selects from.
func (q *SelectQuery) Table() string {
	return q.table
}

// NextAlias allocates a join alias unique within this query.
func (q *SelectQuery) NextAlias() string {
	q.joinCount++
	return fmt.Sprintf("T%d", q.joinCount)
}

// Column adds a projection column.
func (q *SelectQuery) Column(column string) *SelectQuery {
	q.builder = q.builder.Column(column)
	return q
}

// LeftJoin adds a LEFT JOIN clause. Placeholders in the clause are bound
// to args in order.
func (q *SelectQuery) LeftJoin(clause string, args ...interface{}) *SelectQuery {
	q.builder = q.builder.LeftJoin(clause, args...)
	return q
}

// InnerJoin adds an INNER JOIN clause.
func (q *SelectQuery) InnerJoin(clause string, args ...interface{}) *SelectQuery {
	q.builder = q.builder.InnerJoin(clause, args...)
	return q
}

// Where adds a predicate; multiple predicates are conjoined.
func (q *SelectQuery) Where(pred interface{}, args ...interface{}) *SelectQuery {
	q.builder = q.builder.Where(pred, args...)
	return q
}

// OrderBy appends ORDER BY clauses.
func (q *SelectQuery) OrderBy(clauses ...string) *SelectQuery {
	q.builder = q.builder.OrderBy(clauses...)
	return q
}

// Limit caps the number of returned rows.
func (q *SelectQuery) Limit(n uint64) *SelectQuery {
	q.builder = q.builder.Limit(n)
	return q
}

// ToSql renders the query with ? placeholders. It implements
// squirrel.Sqlizer so a SelectQuery nests inside expressions such as a
// recursive CTE body.
func (q *SelectQuery) ToSql() (string, []interface{}, error) {
	return q.builder.ToSql()
}

// SQL renders the query for execution against Postgres, numbering the
// placeholders. Placeholder conversion happens only here, at the outermost
// query, so nested subqueries keep their arguments in declaration order.
func (q *SelectQuery) SQL() (string, []interface{}, error) {
	sqlStr, args, err := q.builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to render query: %w", err)
	}
	sqlStr, err = sq.Dollar.ReplacePlaceholders(sqlStr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to number placeholders: %w", err)
	}
	return sqlStr, args, nil
}

// WithRecursive declares name as a recursive common table expression whose
// body is base UNION step, and returns a new query selecting columns from
// it. Inside step, name refers to the rows produced so far; evaluation is
// the store's iterative fixpoint, not an in-process traversal.
func WithRecursive(name string, base, step *SelectQuery, columns ...string) *SelectQuery {
	q := NewSelect(name, columns...)
	q.builder = q.builder.PrefixExpr(
		sq.Expr(fmt.Sprintf("WITH RECURSIVE %s AS (? UNION ?)", name), base, step),
	)
	return q
}
