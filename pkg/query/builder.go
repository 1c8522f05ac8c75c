package query

import (
	"fmt"
	"strings"
)

type sort struct {
	column     string
	descending bool
}

// Builder constructs ordered SELECT statements over a projection.
type Builder struct {
	projection  *ProjectionMap
	sorts       []sort
	defaultSort string
}

// NewBuilder creates a Builder for projection ordered by defaultSort unless
// OrderBy is called.
func NewBuilder(projection *ProjectionMap, defaultSort string) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// BuildAll returns an ordered SELECT of every row.
func (b *Builder) BuildAll() (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s",
		b.projection.Columns(),
		b.projection.Table(),
		b.buildOrderBy(),
	)
	return sql, nil
}

// OrderBy appends a sort key. Empty fields are ignored.
func (b *Builder) OrderBy(field string, descending bool) *Builder {
	if field != "" {
		b.sorts = append(b.sorts, sort{
			column:     b.projection.Column(field),
			descending: descending,
		})
	}
	return b
}

func (b *Builder) buildOrderBy() string {
	sorts := b.sorts
	if len(sorts) == 0 {
		if b.defaultSort == "" {
			return ""
		}
		sorts = []sort{{column: b.projection.Column(b.defaultSort)}}
	}

	parts := make([]string, len(sorts))
	for i, s := range sorts {
		dir := "ASC"
		if s.descending {
			dir = "DESC"
		}
		parts[i] = fmt.Sprintf("%s %s", s.column, dir)
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// Insert returns a multi-row INSERT into table. Every row must have one
// value per column; the caller guarantees at least one row.
func Insert(table string, columns []string, rows [][]any) (string, []any) {
	values := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(columns))
	param := 1

	for i, row := range rows {
		placeholders := make([]string, len(row))
		for j, v := range row {
			placeholders[j] = fmt.Sprintf("$%d", param)
			args = append(args, v)
			param++
		}
		values[i] = "(" + strings.Join(placeholders, ", ") + ")"
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(values, ", "),
	)
	return sql, args
}
